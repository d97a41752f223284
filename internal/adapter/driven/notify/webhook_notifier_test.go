package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

type stubSecrets struct {
	value string
	err   error
	calls int
}

func (s *stubSecrets) GetSecret(context.Context, string) (string, error) {
	s.calls++
	return s.value, s.err
}

func TestDeliverPostsTextPayload(t *testing.T) {
	var got map[string]string
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "", nil, time.Second)
	require.NoError(t, n.Deliver(context.Background(), "report body"))

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{"text": "report body"}, got)
}

func TestDeliverFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, "", nil, time.Second).Deliver(context.Background(), "x")
	assert.True(t, errors.Is(err, types.ErrDelivery))

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()
	err = NewWebhookNotifier(closedURL, "", nil, time.Second).Deliver(context.Background(), "x")
	assert.True(t, errors.Is(err, types.ErrDelivery))

	err = NewWebhookNotifier("", "", nil, time.Second).Deliver(context.Background(), "x")
	assert.True(t, errors.Is(err, types.ErrConfiguration))

	err = NewWebhookNotifier("not a url", "", nil, time.Second).Deliver(context.Background(), "x")
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestDeliverResolvesSecret(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	for _, secret := range []string{srv.URL, `{"webhook_url":"` + srv.URL + `"}`, `{"url":"` + srv.URL + `"}`} {
		secrets := &stubSecrets{value: secret}
		n := NewWebhookNotifier("", "report/webhook", secrets, time.Second)
		require.NoError(t, n.Deliver(context.Background(), "x"))
		assert.Equal(t, 1, secrets.calls)
	}
	assert.Equal(t, 3, hits)

	failing := &stubSecrets{err: errors.New("not found")}
	err := NewWebhookNotifier("", "report/webhook", failing, time.Second).Deliver(context.Background(), "x")
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestEndpointFromSecret(t *testing.T) {
	assert.Equal(t, "https://a", endpointFromSecret(" https://a \n"))
	assert.Equal(t, "https://b", endpointFromSecret(`{"SLACK_WEBHOOK_URL":"https://b"}`))
	assert.Equal(t, "", endpointFromSecret(`{"other":"x"}`))
	assert.Equal(t, "", endpointFromSecret(`{broken`))
}
