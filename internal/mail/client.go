package mail

import "time"

// Message is a provider-neutral read-only mail message
type Message struct {
	ID      string
	Subject string
	From    string
	To      string
	Date    time.Time
	Snippet string
	Body    string
}
