package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/harmonylane/lessonbook/internal/mailer"
	"github.com/harmonylane/lessonbook/pkg/config"
	"github.com/harmonylane/lessonbook/pkg/events"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

// The notify worker turns booking and contact events into emails. It
// runs in a queue group, so several replicas share the stream without
// double-sending.
const queueGroup = "notify"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	notifier := mailer.NewNotifier(buildMailer(cfg), cfg.App.BaseURL, cfg.App.ContactInbox)
	w := &worker{notifier: notifier}

	subs := map[string]func(msg *events.Message){
		events.BookingCreated:       w.onBookingCreated,
		events.BookingStatusChanged: w.onBookingStatusChanged,
		events.ContactReceived:      w.onContactReceived,
	}
	for subject, handler := range subs {
		if err := eventBus.QueueSubscribe(subject, queueGroup, handler); err != nil {
			logger.Error("Failed to subscribe", "subject", subject, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Notify worker running", "queue", queueGroup)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notify worker...")
}

type worker struct {
	notifier *mailer.Notifier
}

func (w *worker) onBookingCreated(msg *events.Message) {
	var evt events.BookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		logger.Error("Bad booking.created payload", "error", err)
		return
	}

	if err := w.notifier.SendBookingReceived(evt.StudentEmail, evt.StudentName, evt.LessonTypeName, evt.ScheduledDate, evt.ScheduledTime); err != nil {
		logger.Error("Booking received email failed", "booking_id", evt.BookingID, "error", err)
	}
	if err := w.notifier.SendInstructorAlert(evt.InstructorEmail, evt.StudentName, evt.LessonTypeName, evt.ScheduledDate, evt.ScheduledTime); err != nil {
		logger.Error("Instructor alert email failed", "booking_id", evt.BookingID, "error", err)
	}
}

func (w *worker) onBookingStatusChanged(msg *events.Message) {
	var evt events.BookingStatusChangedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		logger.Error("Bad booking.status_changed payload", "error", err)
		return
	}

	if err := w.notifier.SendBookingStatus(evt.StudentEmail, evt.StudentName, evt.NewStatus, evt.ScheduledDate, evt.ScheduledTime); err != nil {
		logger.Error("Status email failed", "booking_id", evt.BookingID, "error", err)
	}
}

func (w *worker) onContactReceived(msg *events.Message) {
	var evt events.ContactReceivedEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		logger.Error("Bad contact.received payload", "error", err)
		return
	}

	if err := w.notifier.ForwardContact(evt.Name, evt.Email, evt.Message); err != nil {
		logger.Error("Contact forward email failed", "error", err)
	}
}

func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	}
	return mailer.NewSMTPMailer(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
		cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
	)
}
