package main

import (
	"errors"
	"os"

	"realestate/cmd/realestate/commands"
	"realestate/internal/build"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *build.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
