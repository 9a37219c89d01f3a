package cmd

import (
	"os"
	"os/exec"
	"strings"
)

// resolveActor determines who ran the calculation, for the activity log.
// Resolution priority:
//  1. IMC_ACTOR env var
//  2. git config user.name
//  3. $USER env var
//  4. "unknown"
func resolveActor() string {
	if actor := os.Getenv("IMC_ACTOR"); actor != "" {
		return actor
	}

	if out, err := exec.Command("git", "config", "user.name").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}

	if user := os.Getenv("USER"); user != "" {
		return user
	}

	return "unknown"
}
