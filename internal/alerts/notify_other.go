//go:build !linux && !darwin

package alerts

import "github.com/rs/zerolog"

type nopNotifier struct{}

func (nopNotifier) Notify(Alert) {}

// NewPlatformNotifier returns a notifier that drops everything; desktop
// notifications are only wired up for Linux and macOS.
func NewPlatformNotifier(enabled bool, log zerolog.Logger) Notifier {
	if enabled {
		log.Info().Msg("desktop notifications are not supported on this platform")
	}
	return nopNotifier{}
}
