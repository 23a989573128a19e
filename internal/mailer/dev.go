package mailer

import "github.com/harmonylane/lessonbook/pkg/logger"

// DevMailer logs emails instead of sending them. Used when EMAIL_DEV_MODE
// is on so local signup and booking flows work without a provider.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("dev mailer: email suppressed",
		"to", toEmail,
		"subject", subject,
		"text", text,
	)
	return "dev", nil
}
