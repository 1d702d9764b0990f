package build

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	"go.uber.org/zap"

	"realestate/internal/domain"
	"realestate/internal/tracing"
)

// Outcome lines printed after every build.
const (
	MsgSuccess = "Build successful"
	MsgFailure = "Build failed"
)

// ExitError reports a build that finished with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Config selects what to build and how.
type Config struct {
	// Dir is the program directory the command runs in.
	Dir string
	// Command is the shell command line, for example "anchor build".
	Command string
	Timeout time.Duration
	Env     map[string]string
}

// Runner runs builds.
type Runner struct {
	cfg Config
	out io.Writer
	log *zap.Logger
}

// New returns a Runner that prints outcome lines to out.
func New(cfg Config, out io.Writer, log *zap.Logger) *Runner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, out: out, log: log}
}

// Build changes into the program directory, runs the command and reports
// success or failure. A non-zero status is returned as *ExitError along with
// the result; failing to run the command at all is returned as is.
func (r *Runner) Build(ctx context.Context) (res domain.BuildResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "build", "INTERNAL")
	span.WithAttributes(map[string]string{"build.command": r.cfg.Command, "build.dir": r.cfg.Dir})
	defer func() {
		span.SetStatus(err)
		span.End()
	}()

	res = domain.BuildResult{Command: r.cfg.Command, Dir: r.cfg.Dir, ExitCode: -1}
	started := time.Now()
	defer func() {
		res.Duration = time.Since(started)
		if res.Succeeded() {
			fmt.Fprintln(r.out, MsgSuccess)
		} else {
			fmt.Fprintln(r.out, MsgFailure)
		}
		r.log.Info("build finished",
			zap.String("command", res.Command),
			zap.String("dir", res.Dir),
			zap.Int("exit_code", res.ExitCode),
			zap.Duration("elapsed", res.Duration))
	}()

	var opts []runner.Option
	if len(r.cfg.Env) > 0 {
		opts = append(opts, runner.WithEnvironment(r.cfg.Env))
	}
	svc, err := gosh.New(ctx, local.New(opts...))
	if err != nil {
		return res, fmt.Errorf("start shell: %w", err)
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			r.log.Debug("close shell", zap.Error(cerr))
		}
	}()

	if r.cfg.Dir != "" {
		out, status, err := svc.Run(ctx, "cd "+shellQuote(r.cfg.Dir))
		if err != nil {
			return res, fmt.Errorf("cd %s: %w", r.cfg.Dir, err)
		}
		if status != 0 {
			res.ExitCode = status
			res.Output = out
			return res, &ExitError{Command: "cd " + r.cfg.Dir, Code: status}
		}
	}

	out, status, err := svc.Run(ctx, r.cfg.Command, runner.WithTimeout(int(r.cfg.Timeout.Milliseconds())))
	res.Output = out
	if err != nil {
		return res, fmt.Errorf("run %q: %w", r.cfg.Command, err)
	}
	res.ExitCode = status
	if status != 0 {
		return res, &ExitError{Command: r.cfg.Command, Code: status}
	}
	return res, nil
}

var _ domain.Builder = (*Runner)(nil)

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
