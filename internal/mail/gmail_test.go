package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGmailListMessages_FetchesEachMessage(t *testing.T) {
	body := base64.URLEncoding.EncodeToString([]byte("Hello from the form"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/me/messages":
			w.Write([]byte(`{"messages": [{"id": "m1"}]}`))
		case "/users/me/messages/m1":
			assert.Equal(t, "full", r.URL.Query().Get("format"))
			fmt.Fprintf(w, `{
				"id": "m1",
				"snippet": "Hello",
				"internalDate": "1741100645000",
				"payload": {
					"headers": [
						{"name": "Subject", "value": "Inquiry"},
						{"name": "From", "value": "lead@example.com"}
					],
					"body": {"data": "%s"}
				}
			}`, body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewGmailClient(srv.URL, 2*time.Second)
	messages, err := c.ListMessages(context.Background(), "tok", 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, "Inquiry", messages[0].Subject)
	assert.Equal(t, "lead@example.com", messages[0].From)
	assert.Equal(t, "Hello from the form", messages[0].Body)
	assert.False(t, messages[0].Date.IsZero())
}

func TestGmailGetMessage_TextPlainPartFallback(t *testing.T) {
	plain := base64.URLEncoding.EncodeToString([]byte("plain text body"))
	html := base64.URLEncoding.EncodeToString([]byte("<p>html body</p>"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": "m2",
			"payload": {
				"headers": [],
				"body": {"data": ""},
				"parts": [
					{"mimeType": "text/html", "body": {"data": "%s"}},
					{"mimeType": "text/plain", "body": {"data": "%s"}}
				]
			}
		}`, html, plain)
	}))
	defer srv.Close()

	c := NewGmailClient(srv.URL, 2*time.Second)
	msg, err := c.GetMessage(context.Background(), "tok", "m2")
	require.NoError(t, err)
	assert.Equal(t, "plain text body", msg.Body)
}

func TestGmailProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/profile", r.URL.Path)
		w.Write([]byte(`{"emailAddress": "owner@gmail.com"}`))
	}))
	defer srv.Close()

	c := NewGmailClient(srv.URL, 2*time.Second)
	email, err := c.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "owner@gmail.com", email)
}
