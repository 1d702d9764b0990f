package types

import "time"

// BuildResult describes one run of the program build command.
type BuildResult struct {
	Command  string        `json:"command"`
	Dir      string        `json:"dir"`
	ExitCode int           `json:"exit_code"`
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the build command exited with status 0.
func (r BuildResult) Succeeded() bool { return r.ExitCode == 0 }
