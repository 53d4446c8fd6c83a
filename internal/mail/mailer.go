package mail

import (
	"context"
	"log"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

// LogMailer writes the reset link to the application log instead of sending
// mail. Enough for development; production wires a real provider behind the
// same domain.Mailer port.
type LogMailer struct {
	Log *log.Logger
}

var _ domain.Mailer = (*LogMailer)(nil)

func (m *LogMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.Log.Printf("password reset requested for %s: %s", email, link)
	return nil
}
