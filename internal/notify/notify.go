package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/askeland/fsra-register/internal/logger"
)

// Message is one notification. Priority and Tags follow ntfy's header
// conventions and may be empty.
type Message struct {
	Title    string
	Body     string
	Priority string
	Tags     []string
}

// Notifier publishes run-status messages.
type Notifier interface {
	Publish(ctx context.Context, msg Message) error
}

// Ntfy publishes messages to an ntfy topic URL via plain HTTP POST.
type Ntfy struct {
	url    string
	client *http.Client
}

// NewNtfy creates a notifier for the given topic URL.
func NewNtfy(url string) (*Ntfy, error) {
	if url == "" {
		return nil, fmt.Errorf("ntfy URL is empty")
	}
	return &Ntfy{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Publish POSTs the message body with title, priority and tags carried as
// ntfy headers.
func (n *Ntfy) Publish(ctx context.Context, msg Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader(msg.Body))
	if err != nil {
		return fmt.Errorf("creating notification request: %w", err)
	}
	if msg.Title != "" {
		req.Header.Set("Title", msg.Title)
	}
	if msg.Priority != "" {
		req.Header.Set("Priority", msg.Priority)
	}
	if len(msg.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.Tags, ","))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("publishing notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("publishing notification: status %d", resp.StatusCode)
	}
	return nil
}

// Noop is used when no topic URL is configured. Publishing logs once at
// debug level and succeeds.
type Noop struct{}

// Publish discards the message.
func (Noop) Publish(_ context.Context, msg Message) error {
	logger.Debug("notifications disabled, dropping message", logger.Fields{"title": msg.Title})
	return nil
}

// DryRun prints messages instead of sending them.
type DryRun struct {
	Out io.Writer
}

// Publish writes the message to Out.
func (d DryRun) Publish(_ context.Context, msg Message) error {
	fmt.Fprintf(d.Out, "--- notification ---\nTitle: %s\n%s\n\n", msg.Title, msg.Body)
	return nil
}
