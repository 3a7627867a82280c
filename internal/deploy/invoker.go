package deploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
)

var urlPattern = regexp.MustCompile(`https://[^\s"']+`)

// Invoker runs the platform's own deployment CLI against a prepared
// workspace and scrapes the deployment URL out of whatever the tool
// printed.
type Invoker struct {
	Bin       string
	Token     string
	ProjectID string
}

// Deploy invokes the CLI non-interactively against dir and returns the
// first https URL it reported. The tool is known to sometimes print a
// perfectly good URL and still exit non-zero, so on failure the captured
// stdout, stderr, and the error text are searched in that order before
// giving up.
func (inv *Invoker) Deploy(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, inv.Bin, "--prod", "--yes", "--token", inv.Token)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if inv.ProjectID != "" {
		cmd.Env = append(cmd.Env, "VERCEL_PROJECT_ID="+inv.ProjectID)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		if url := urlPattern.FindString(stdout.String()); url != "" {
			return url, nil
		}
		return "", fmt.Errorf("deploy finished but no URL was found in output: %s", stdout.String())
	}

	for _, text := range []string{stdout.String(), stderr.String(), err.Error()} {
		if url := urlPattern.FindString(text); url != "" {
			return url, nil
		}
	}

	return "", fmt.Errorf("deploy failed: %v\nstdout: %s\nstderr: %s", err, stdout.String(), stderr.String())
}
