//go:build linux

package destination

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"
)

type activeWindow struct {
	Class        string `json:"class"`
	InitialClass string `json:"initialClass"`
	Title        string `json:"title"`
}

// Active returns the class of the focused window, or "" when it cannot be
// determined. Hyprland is queried first, then xdotool as an X11 fallback.
func Active() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if out, err := exec.CommandContext(ctx, "hyprctl", "-j", "activewindow").Output(); err == nil {
		var win activeWindow
		if json.Unmarshal(out, &win) == nil {
			if c := strings.TrimSpace(win.Class); c != "" {
				return c
			}
			if c := strings.TrimSpace(win.InitialClass); c != "" {
				return c
			}
		}
	}

	if out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowname").Output(); err == nil {
		return strings.TrimSpace(string(out))
	}

	return ""
}
