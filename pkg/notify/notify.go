// Package notify delivers best-effort status messages to a Discord/Slack
// style webhook. Delivery is fire-and-forget: every failure is swallowed,
// the only record of a lost message is the absence of an HTTP error we
// never report.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RequestTimeout bounds a single webhook POST.
const RequestTimeout = 5 * time.Second

var levelEmoji = map[string]string{
	"INFO":    "ℹ️",
	"SUCCESS": "✅",
	"ERROR":   "❌",
	"WARNING": "⚠️",
	"BUILD":   "🔨",
	"FIX":     "🔧",
	"AI":      "🤖",
}

// Notifier posts status lines to a single webhook endpoint.
type Notifier struct {
	url    string
	client *http.Client
}

// NewNotifier returns a notifier for the given webhook URL, or nil when no
// URL is configured. A nil *Notifier is safe to call.
func NewNotifier(url string) *Notifier {
	if url == "" {
		return nil
	}
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: RequestTimeout},
	}
}

// Send posts one status line tagged with the iteration and severity level.
// Errors are intentionally dropped; the caller's local log is the only
// place failures surface.
func (n *Notifier) Send(iteration int, level, message string) {
	if n == nil {
		return
	}

	emoji, ok := levelEmoji[level]
	if !ok {
		emoji = "📝"
	}

	payload := map[string]string{
		"content": fmt.Sprintf("%s **Iteration %d** - [%s] %s", emoji, iteration, level, message),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}
