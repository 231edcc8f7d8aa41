package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func newTestSendGrid(t *testing.T, handler http.HandlerFunc) *SendGrid {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender, err := NewSendGrid(config.MailConfig{
		SendgridAPIKey: "sg-key",
		DefaultFrom:    "no-reply@classmart.test",
	}, nil)
	require.NoError(t, err)
	sender.endpoint = server.URL
	sender.client = &http.Client{Timeout: time.Second}
	return sender
}

func TestSendPostsSendgridPayload(t *testing.T) {
	var got sgPayload
	sender := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	})

	err := sender.Send(context.Background(), "cliente@example.com", "Pedido cancelado", "Su pedido fue cancelado.")
	require.NoError(t, err)
	require.Equal(t, "no-reply@classmart.test", got.From.Email)
	require.Len(t, got.Personalizations, 1)
	require.Equal(t, "cliente@example.com", got.Personalizations[0].To[0].Email)
	require.Equal(t, "Pedido cancelado", got.Subject)
}

func TestSendSurfacesProviderRejection(t *testing.T) {
	sender := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad"}]}`, http.StatusBadRequest)
	})

	err := sender.Send(context.Background(), "cliente@example.com", "x", "y")
	require.Error(t, err)
}

func TestSendRequiresRecipient(t *testing.T) {
	sender := newTestSendGrid(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	require.Error(t, sender.Send(context.Background(), "", "x", "y"))
}

func TestNoopAlwaysSucceeds(t *testing.T) {
	require.NoError(t, NewNoop(nil).Send(context.Background(), "a@b.c", "s", "b"))
}
