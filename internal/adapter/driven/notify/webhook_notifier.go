package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// WebhookNotifier entrega o relatório como {"text": ...} num webhook estilo Slack.
type WebhookNotifier struct {
	client   *http.Client
	url      string
	secretID string
	secrets  repository.SecretRepository
}

// NewWebhookNotifier cria o notificador. O endpoint vem de webhookURL ou, quando vazio,
// do segredo secretID resolvido no momento da entrega.
func NewWebhookNotifier(webhookURL, secretID string, secrets repository.SecretRepository, timeout time.Duration) repository.NotifierRepository {
	if timeout <= 0 {
		timeout = types.DefaultDeliveryTimeoutSecs * time.Second
	}
	return &WebhookNotifier{
		client:   &http.Client{Timeout: timeout},
		url:      strings.TrimSpace(webhookURL),
		secretID: strings.TrimSpace(secretID),
		secrets:  secrets,
	}
}

type webhookPayload struct {
	Text string `json:"text"`
}

// Deliver posts the report once. There is no retry.
func (n *WebhookNotifier) Deliver(ctx context.Context, text string) error {
	endpoint, err := n.endpoint(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(webhookPayload{Text: text})
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: webhook returned status %d", types.ErrDelivery, resp.StatusCode)
	}
	return nil
}

func (n *WebhookNotifier) endpoint(ctx context.Context) (string, error) {
	raw := n.url
	if raw == "" {
		if n.secretID == "" || n.secrets == nil {
			return "", fmt.Errorf("%w: no webhook url or webhook secret configured", types.ErrConfiguration)
		}
		secret, err := n.secrets.GetSecret(ctx, n.secretID)
		if err != nil {
			return "", fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		raw = endpointFromSecret(secret)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: invalid webhook url", types.ErrConfiguration)
	}
	return raw, nil
}

// endpointFromSecret aceita a URL pura ou um JSON com "url" ou "webhook_url".
func endpointFromSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if !strings.HasPrefix(secret, "{") {
		return secret
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(secret), &fields); err != nil {
		return ""
	}
	for _, key := range []string{"webhook_url", "url", "SLACK_WEBHOOK_URL"} {
		if v := strings.TrimSpace(fields[key]); v != "" {
			return v
		}
	}
	return ""
}
