package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const gmailBaseURL = "https://gmail.googleapis.com/gmail/v1"

// GmailClient reads mail through the Gmail REST API
type GmailClient struct {
	baseURL string
	client  *http.Client
}

// NewGmailClient creates a Gmail client. An empty baseURL uses the public
// endpoint; tests point it at a local server.
func NewGmailClient(baseURL string, timeout time.Duration) *GmailClient {
	if baseURL == "" {
		baseURL = gmailBaseURL
	}
	return &GmailClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type gmailMessage struct {
	ID           string `json:"id"`
	Snippet      string `json:"snippet"`
	InternalDate string `json:"internalDate"`
	Payload      struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
		Body struct {
			Data string `json:"data"`
		} `json:"body"`
		Parts []struct {
			MimeType string `json:"mimeType"`
			Body     struct {
				Data string `json:"data"`
			} `json:"body"`
		} `json:"parts"`
	} `json:"payload"`
}

func (m *gmailMessage) header(name string) string {
	for _, h := range m.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func (m *gmailMessage) toMessage() Message {
	msg := Message{
		ID:      m.ID,
		Subject: m.header("Subject"),
		From:    m.header("From"),
		To:      m.header("To"),
		Snippet: m.Snippet,
	}
	if ms, err := strconv.ParseInt(m.InternalDate, 10, 64); err == nil {
		msg.Date = time.UnixMilli(ms).UTC()
	}

	data := m.Payload.Body.Data
	if data == "" {
		for _, part := range m.Payload.Parts {
			if part.MimeType == "text/plain" && part.Body.Data != "" {
				data = part.Body.Data
				break
			}
		}
	}
	if data != "" {
		if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
			msg.Body = string(decoded)
		}
	}
	return msg
}

// ListMessages returns the newest messages in the inbox. Gmail's list
// endpoint only returns IDs, so each message is fetched individually.
func (c *GmailClient) ListMessages(ctx context.Context, accessToken string, limit int) ([]Message, error) {
	url := fmt.Sprintf("%s/users/me/messages?maxResults=%d", c.baseURL, limit)
	var listBody struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := c.get(ctx, url, accessToken, &listBody); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(listBody.Messages))
	for _, ref := range listBody.Messages {
		msg, err := c.GetMessage(ctx, accessToken, ref.ID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

// GetMessage returns a single message with its full body
func (c *GmailClient) GetMessage(ctx context.Context, accessToken, id string) (*Message, error) {
	var body gmailMessage
	url := fmt.Sprintf("%s/users/me/messages/%s?format=full", c.baseURL, id)
	if err := c.get(ctx, url, accessToken, &body); err != nil {
		return nil, err
	}
	msg := body.toMessage()
	return &msg, nil
}

// Profile returns the mailbox owner's address
func (c *GmailClient) Profile(ctx context.Context, accessToken string) (string, error) {
	var body struct {
		EmailAddress string `json:"emailAddress"`
	}
	if err := c.get(ctx, c.baseURL+"/users/me/profile", accessToken, &body); err != nil {
		return "", err
	}
	return body.EmailAddress, nil
}

func (c *GmailClient) get(ctx context.Context, url, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gmail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gmail request returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
