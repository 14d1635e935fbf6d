package email

// Sender is the notification gateway consumed by the account service. Sends
// are fire-and-forget from the service's perspective: a failed delivery is
// logged by the caller and never aborts the account operation that preceded
// it.
type Sender interface {
	SendActivationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// NoopSender satisfies Sender without delivering anything. Used in tests and
// in environments without an SMTP relay.
type NoopSender struct{}

func (NoopSender) SendActivationEmail(to, token string) error    { return nil }
func (NoopSender) SendPasswordResetEmail(to, token string) error { return nil }
