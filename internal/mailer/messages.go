package mailer

import "fmt"

// Notifier composes the lesson-booking emails on top of a Service, so
// the MailerSend, SMTP and dev transports all send the same bodies.
type Notifier struct {
	svc          Service
	baseURL      string
	contactInbox string
}

func NewNotifier(svc Service, baseURL, contactInbox string) *Notifier {
	return &Notifier{svc: svc, baseURL: baseURL, contactInbox: contactInbox}
}

func (n *Notifier) SendVerification(email, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", n.baseURL, token)
	subject := "Verify your email"
	text := fmt.Sprintf("Hi %s,\n\nConfirm your email to finish signing up: %s", name, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Confirm your email to finish signing up: <a href="%s">%s</a></p>`, name, link, link)
	_, err := n.svc.Send(email, name, subject, text, html)
	return err
}

func (n *Notifier) SendPasswordReset(email, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", n.baseURL, token)
	subject := "Reset your password"
	text := fmt.Sprintf("Hi %s,\n\nReset your password here: %s\n\nIf you didn't ask for this, ignore this email.", name, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Reset your password <a href="%s">here</a>.</p><p>If you didn't ask for this, ignore this email.</p>`, name, link)
	_, err := n.svc.Send(email, name, subject, text, html)
	return err
}

func (n *Notifier) SendBookingReceived(email, name, lessonType, date, timeOfDay string) error {
	subject := "Your lesson request was received"
	text := fmt.Sprintf("Hi %s,\n\nWe received your request for %s on %s at %s. You'll get another email once your instructor confirms.", name, lessonType, date, timeOfDay)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>We received your request for <b>%s</b> on %s at %s.</p><p>You'll get another email once your instructor confirms.</p>`, name, lessonType, date, timeOfDay)
	_, err := n.svc.Send(email, name, subject, text, html)
	return err
}

func (n *Notifier) SendBookingStatus(email, name, status, date, timeOfDay string) error {
	subject := fmt.Sprintf("Your lesson on %s is %s", date, status)
	text := fmt.Sprintf("Hi %s,\n\nYour lesson on %s at %s is now %s.", name, date, timeOfDay, status)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your lesson on %s at %s is now <b>%s</b>.</p>`, name, date, timeOfDay, status)
	_, err := n.svc.Send(email, name, subject, text, html)
	return err
}

func (n *Notifier) SendInstructorAlert(email, studentName, lessonType, date, timeOfDay string) error {
	subject := "New lesson request"
	text := fmt.Sprintf("%s requested %s on %s at %s. Confirm or decline from your dashboard: %s/dashboard", studentName, lessonType, date, timeOfDay, n.baseURL)
	html := fmt.Sprintf(`<p><b>%s</b> requested %s on %s at %s.</p><p>Confirm or decline from your <a href="%s/dashboard">dashboard</a>.</p>`, studentName, lessonType, date, timeOfDay, n.baseURL)
	_, err := n.svc.Send(email, "", subject, text, html)
	return err
}

// ForwardContact relays a contact-form submission to the site inbox.
func (n *Notifier) ForwardContact(name, email, message string) error {
	if n.contactInbox == "" {
		return nil
	}
	subject := fmt.Sprintf("Contact form: %s", name)
	text := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)
	html := fmt.Sprintf(`<p>From: %s &lt;%s&gt;</p><p>%s</p>`, name, email, message)
	_, err := n.svc.Send(n.contactInbox, "", subject, text, html)
	return err
}
