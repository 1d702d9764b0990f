package app

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"realestate/internal/workspace"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string               // local state directory, e.g. $HOME/.realestate
	Workspace *workspace.Workspace // loaded Anchor workspace and provider settings
	HTTP      *http.Client         // optional; defaults to a client with the provider timeout
	Logger    *zap.Logger          // optional; defaults to a no-op logger
	Out       io.Writer            // where build outcome lines are printed
}
