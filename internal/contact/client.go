package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client posts messages to a relay's contact route.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Send(ctx context.Context, msg string) error {
	if c == nil || c.Endpoint == "" {
		return ErrNotConfigured
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ErrEmptyMessage
	}

	body, err := json.Marshal(request{Message: msg})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var out struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		if out.Error != "" {
			return fmt.Errorf("%w: server responded with %d: %s", ErrDelivery, resp.StatusCode, out.Error)
		}
		return fmt.Errorf("%w: server responded with %d", ErrDelivery, resp.StatusCode)
	}
	return nil
}

// Endpoint joins a relay base URL with the contact route.
func Endpoint(base string) string {
	if base == "" {
		return ""
	}
	if strings.HasSuffix(base, Path) {
		return base
	}
	return strings.TrimRight(base, "/") + Path
}
