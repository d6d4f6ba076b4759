package notifyrepo

import "context"

type Message struct {
	To      string
	Subject string
	Body    string
}

// Repo delivers notification mail. Circulation never blocks on it and
// treats delivery failures as non-fatal.
type Repo interface {
	Send(ctx context.Context, msg Message) error
}

type noop struct{}

// NewNoop returns a sender that drops everything; used when no mail API
// is configured.
func NewNoop() Repo { return noop{} }

func (noop) Send(ctx context.Context, msg Message) error { return nil }
