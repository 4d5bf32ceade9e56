package index

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitTag returns `git describe --always --abbrev=0` for the repository
// containing dir.
func GitTag(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "describe", "--always", "--abbrev=0")
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git describe: %w: %s", err, msg)
		}
		return "", fmt.Errorf("git describe: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
