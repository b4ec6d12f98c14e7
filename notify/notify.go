// Package notify shows best-effort desktop notifications. Failures are
// logged and never propagated.
package notify

import (
	"github.com/gen2brain/beeep"

	"kotonote/log"
)

const appTitle = "kotonote"

func Show(message string) {
	if err := beeep.Notify(appTitle, message, ""); err != nil {
		log.Warnf("notification failed: %v", err)
	}
}
