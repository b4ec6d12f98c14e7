//go:build darwin

package destination

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Active returns the name of the frontmost application, or "" when it cannot
// be determined.
func Active() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	script := `tell application "System Events" to get name of first application process whose frontmost is true`
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
