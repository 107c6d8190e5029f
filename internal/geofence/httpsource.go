package geofence

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPSource subscribes to a JSON-lines position stream, one Position
// object per line. Disconnects surface as read errors and the source
// reconnects with a fixed backoff until the context is cancelled.
type HTTPSource struct {
	URL     string
	HTTP    *http.Client
	Backoff time.Duration
}

// NewHTTPSource creates a source for the given stream URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		HTTP:    &http.Client{},
		Backoff: 5 * time.Second,
	}
}

// Watch opens the stream and feeds readings until release is called or
// the context ends.
func (s *HTTPSource) Watch(ctx context.Context) (<-chan Reading, func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)
	out := make(chan Reading)

	go func() {
		defer close(out)
		for {
			if err := s.stream(streamCtx, out); err != nil {
				if streamCtx.Err() != nil {
					return
				}
				select {
				case out <- Reading{Err: err}:
				case <-streamCtx.Done():
					return
				}
			}
			select {
			case <-time.After(s.Backoff):
			case <-streamCtx.Done():
				return
			}
		}
	}()
	return out, cancel, nil
}

func (s *HTTPSource) stream(ctx context.Context, out chan<- Reading) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return fmt.Errorf("geofence: build stream request: %w", err)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("geofence: connect stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geofence: stream returned %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var pos Position
		if err := json.Unmarshal(line, &pos); err != nil {
			select {
			case out <- Reading{Err: fmt.Errorf("geofence: bad position line: %w", err)}:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		select {
		case out <- Reading{Position: pos}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("geofence: stream read: %w", err)
	}
	return fmt.Errorf("geofence: stream closed by server")
}

// LogNotifier writes the arrival notification to the process log. The
// agent uses it where no system notification channel is wired.
type LogNotifier struct {
	Logf func(format string, args ...any)
}

// Notify logs the message.
func (n *LogNotifier) Notify(_ context.Context, message string) error {
	if n.Logf != nil {
		n.Logf("%s", message)
	}
	return nil
}
