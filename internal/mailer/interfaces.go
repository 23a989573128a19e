package mailer

// Service is a transport that can deliver one email. Implementations
// return the provider's message id when they have one.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}
