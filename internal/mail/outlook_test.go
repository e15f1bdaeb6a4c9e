package mail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlookListMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("$top"))
		w.Write([]byte(`{"value": [
			{
				"id": "AAMk1",
				"subject": "Quote follow-up",
				"bodyPreview": "Just checking in",
				"receivedDateTime": "2025-03-04T15:04:05Z",
				"from": {"emailAddress": {"address": "buyer@example.com"}}
			}
		]}`))
	}))
	defer srv.Close()

	c := NewOutlookClient(srv.URL, 2*time.Second)
	messages, err := c.ListMessages(context.Background(), "tok-123", 5)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, "AAMk1", messages[0].ID)
	assert.Equal(t, "Quote follow-up", messages[0].Subject)
	assert.Equal(t, "buyer@example.com", messages[0].From)
	assert.Equal(t, "Just checking in", messages[0].Snippet)
	assert.Equal(t, 2025, messages[0].Date.Year())
}

func TestOutlookGetMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/messages/AAMk2", r.URL.Path)
		w.Write([]byte(`{
			"id": "AAMk2",
			"subject": "PO attached",
			"body": {"content": "Please find the PO attached."}
		}`))
	}))
	defer srv.Close()

	c := NewOutlookClient(srv.URL, 2*time.Second)
	msg, err := c.GetMessage(context.Background(), "tok", "AAMk2")
	require.NoError(t, err)
	assert.Equal(t, "Please find the PO attached.", msg.Body)
}

func TestOutlookProfile_FallsBackToPrincipalName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mail": "", "userPrincipalName": "user@tenant.onmicrosoft.com"}`))
	}))
	defer srv.Close()

	c := NewOutlookClient(srv.URL, 2*time.Second)
	email, err := c.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user@tenant.onmicrosoft.com", email)
}

func TestOutlookUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOutlookClient(srv.URL, 2*time.Second)
	_, err := c.ListMessages(context.Background(), "expired", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
