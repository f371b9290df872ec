// Package notify delivers best-effort owner notifications through the
// configured third-party endpoint. Delivery failures degrade to a false
// return, never an error: a lost alert must not fail the calling request.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sellerdesk/internal/apperr"
)

const (
	titleMaxLength   = 1200
	contentMaxLength = 20000
	requestTimeout   = 10 * time.Second
)

type Notifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *logrus.Logger
}

func New(endpoint, apiKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}
}

// NotifyOwner sends a notification and reports whether it was delivered.
// Missing configuration is an INTERNAL error; a remote failure is not.
func (n *Notifier) NotifyOwner(ctx context.Context, title, content string) (bool, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return false, apperr.New(apperr.KindBadRequest, "title and content are required")
	}
	if n.endpoint == "" || n.apiKey == "" {
		return false, apperr.New(apperr.KindInternal, "notification service not configured")
	}

	if len(title) > titleMaxLength {
		title = title[:titleMaxLength]
	}
	if len(content) > contentMaxLength {
		content = content[:contentMaxLength]
	}

	body, err := json.Marshal(map[string]string{"title": title, "content": content})
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "encode notification", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+"/notifications", bytes.NewReader(body))
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "build notification request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warnf("owner notification failed: %v", err)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		n.logger.Warnf("owner notification rejected: status %d: %s", resp.StatusCode, string(detail))
		return false, nil
	}
	return true, nil
}
