//go:build linux

package alerts

import (
	"os/exec"

	"github.com/rs/zerolog"
)

// NotifySendNotifier sends Linux desktop notifications via notify-send.
// Notifications are sent in a background goroutine so a slow notification
// daemon cannot stall the store's listeners.
type NotifySendNotifier struct {
	enabled bool
	log     zerolog.Logger
}

// NewNotifySendNotifier creates a new Linux notification sender.
// If enabled is false, notifications are silently dropped.
func NewNotifySendNotifier(enabled bool, log zerolog.Logger) *NotifySendNotifier {
	return &NotifySendNotifier{enabled: enabled, log: log}
}

// NewPlatformNotifier creates the platform-appropriate notifier for Linux.
func NewPlatformNotifier(enabled bool, log zerolog.Logger) Notifier {
	return NewNotifySendNotifier(enabled, log)
}

// Notify sends a desktop notification for alert and returns immediately.
func (n *NotifySendNotifier) Notify(alert Alert) {
	if !n.enabled {
		return
	}

	title, body := notificationText(alert)
	urgency := "normal"
	if alert.Severity == SeverityHigh {
		urgency = "critical"
	}

	go func() {
		if err := sendNotifySend(title, body, urgency); err != nil {
			n.log.Warn().Err(err).Str("alert", alert.ID).Msg("failed to send desktop notification")
		}
	}()
}

func sendNotifySend(title, body, urgency string) error {
	cmd := exec.Command("notify-send", "--urgency", urgency, "--app-name", "deepseaguard", title, body)
	return cmd.Run()
}
