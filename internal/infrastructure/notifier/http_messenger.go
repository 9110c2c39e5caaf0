package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// HTTPMessenger posts notifications to a WhatsApp-style gateway. The
// credential travels in the Client-Token header.
type HTTPMessenger struct {
	client     *http.Client
	gatewayURL string
}

func NewHTTPMessenger(gatewayURL string, timeout time.Duration) *HTTPMessenger {
	return &HTTPMessenger{
		client:     &http.Client{Timeout: timeout},
		gatewayURL: gatewayURL,
	}
}

func (m *HTTPMessenger) SendNotification(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(gatewayRequest{
		Phone:   n.Recipient,
		Message: n.Message,
		Kind:    string(n.Kind),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Token", n.Credential)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification gateway returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}
