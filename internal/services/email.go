package services

import (
	"crypto/tls"
	"fmt"

	"github.com/reviewhub/reviews-backend/internal/config"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/pkg/logger"
	"gopkg.in/gomail.v2"
)

// EmailNotifier mails the configured moderator address whenever a
// review gets flagged. Delivery is best effort: failures are logged and
// never surfaced to the flagging request.
type EmailNotifier struct {
	config *config.Config
}

func NewEmailNotifier(config *config.Config) *EmailNotifier {
	return &EmailNotifier{config: config}
}

// Enabled reports whether SMTP and a moderator address are configured.
func (s *EmailNotifier) Enabled() bool {
	return s.config.SMTPHost != "" && s.config.ModeratorEmail != ""
}

func (s *EmailNotifier) NotifyFlagged(review *models.Review) {
	if !s.Enabled() {
		return
	}

	subject := fmt.Sprintf("Review #%d flagged for moderation", review.ID)
	body := fmt.Sprintf(`
		<h2>Review Flagged</h2>
		<p>A review was flagged by a user and awaits moderation.</p>
		<p><strong>Author:</strong> %s (%s)</p>
		<p><strong>Rating:</strong> %d/5</p>
		<p><strong>Sentiment:</strong> %s</p>
		<blockquote>%s</blockquote>
		<p>Review it in the admin dashboard.</p>
	`, review.Name, review.Email, review.Rating, review.SentimentLabel, review.Comment)

	if err := s.send(s.config.ModeratorEmail, subject, body); err != nil {
		logger.Error("failed to send flag notification: ", err)
	}
}

func (s *EmailNotifier) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}
