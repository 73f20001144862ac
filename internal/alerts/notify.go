package alerts

import (
	"fmt"
	"sync"
)

// Notifier delivers a desktop notification for an alert.
type Notifier interface {
	Notify(alert Alert)
}

const maxNotifyMessage = 120

// NotifyNewHigh returns a ChangeListener that notifies once for each
// high-severity alert ID not seen before. Alerts in initial count as seen, so
// registering after the first load does not replay them.
func NotifyNewHigh(n Notifier, initial []Alert) ChangeListener {
	var mu sync.Mutex
	seen := make(map[string]bool, len(initial))
	for _, a := range initial {
		seen[a.ID] = true
	}

	return func(active []Alert) {
		mu.Lock()
		var fresh []Alert
		for _, a := range active {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			if a.Severity == SeverityHigh {
				fresh = append(fresh, a)
			}
		}
		mu.Unlock()

		for _, a := range fresh {
			n.Notify(a)
		}
	}
}

// notificationText builds the title and body shown in a notification.
func notificationText(a Alert) (title, body string) {
	title = fmt.Sprintf("DeepSeaGuard: %s", a.Title)
	body = truncateMessage(a.Message, maxNotifyMessage)
	if a.Category != "" {
		body = fmt.Sprintf("[%s] %s", a.Category, body)
	}
	return title, body
}

// truncateMessage shortens msg to at most n runes for display in notifications.
func truncateMessage(msg string, n int) string {
	r := []rune(msg)
	if len(r) <= n {
		return msg
	}
	return string(r[:n]) + "..."
}
