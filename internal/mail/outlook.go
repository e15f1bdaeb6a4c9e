package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// OutlookClient reads mail through the Microsoft Graph API
type OutlookClient struct {
	baseURL string
	client  *http.Client
}

// NewOutlookClient creates a Graph client. An empty baseURL uses the
// public Graph endpoint; tests point it at a local server.
func NewOutlookClient(baseURL string, timeout time.Duration) *OutlookClient {
	if baseURL == "" {
		baseURL = graphBaseURL
	}
	return &OutlookClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type graphMessage struct {
	ID               string `json:"id"`
	Subject          string `json:"subject"`
	BodyPreview      string `json:"bodyPreview"`
	ReceivedDateTime string `json:"receivedDateTime"`
	From             struct {
		EmailAddress struct {
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
	Body struct {
		Content string `json:"content"`
	} `json:"body"`
}

func (m *graphMessage) toMessage() Message {
	date, _ := time.Parse(time.RFC3339, m.ReceivedDateTime)
	return Message{
		ID:      m.ID,
		Subject: m.Subject,
		From:    m.From.EmailAddress.Address,
		Date:    date,
		Snippet: m.BodyPreview,
		Body:    m.Body.Content,
	}
}

// ListMessages returns the newest messages in the inbox
func (c *OutlookClient) ListMessages(ctx context.Context, accessToken string, limit int) ([]Message, error) {
	url := fmt.Sprintf("%s/me/messages?$top=%d&$orderby=receivedDateTime desc", c.baseURL, limit)
	var body struct {
		Value []graphMessage `json:"value"`
	}
	if err := c.get(ctx, url, accessToken, &body); err != nil {
		return nil, err
	}

	messages := make([]Message, len(body.Value))
	for i := range body.Value {
		messages[i] = body.Value[i].toMessage()
	}
	return messages, nil
}

// GetMessage returns a single message with its full body
func (c *OutlookClient) GetMessage(ctx context.Context, accessToken, id string) (*Message, error) {
	var body graphMessage
	if err := c.get(ctx, fmt.Sprintf("%s/me/messages/%s", c.baseURL, id), accessToken, &body); err != nil {
		return nil, err
	}
	msg := body.toMessage()
	return &msg, nil
}

// Profile returns the mailbox owner's address
func (c *OutlookClient) Profile(ctx context.Context, accessToken string) (string, error) {
	var body struct {
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := c.get(ctx, c.baseURL+"/me", accessToken, &body); err != nil {
		return "", err
	}
	if body.Mail != "" {
		return body.Mail, nil
	}
	return body.UserPrincipalName, nil
}

func (c *OutlookClient) get(ctx context.Context, url, accessToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graph request returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
