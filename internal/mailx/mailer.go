// Package mailx is the boundary to the email collaborator. The orchestrator
// only depends on the Mailer interface; the SendGrid implementation lives in
// this package too.
package mailx

import "context"

// Message is a single outbound email. At least one of Text or HTML must be
// set.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers one message. Implementations must honor the context
// deadline and surface delivery failures instead of swallowing them; retries
// belong to the caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
