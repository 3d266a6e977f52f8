package mail

import "context"

// Message is a fully-formed outbound mail: HTML body plus an optional
// calendar attachment.
type Message struct {
	Subject  string
	To       []string
	HTMLBody string

	// ICS is a text/calendar payload; empty means no attachment.
	ICS         []byte
	ICSFilename string
}

// Transport sends one message synchronously. Implementations return a
// transport error on failure; the dispatcher isolates failures per message.
type Transport interface {
	Send(ctx context.Context, m Message) error
}
