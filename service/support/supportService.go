package support

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"vtunigeria/model"
	supportrepo "vtunigeria/repository/support"
)

// Mailer notifies the support inbox about a new ticket. Failures are logged,
// never surfaced to the user: the ticket row is the source of truth.
type Mailer interface {
	NotifyTicket(ctx context.Context, t *model.SupportTicket, userEmail string) error
}

type Service interface {
	Submit(ctx context.Context, userID int64, userEmail string, req model.SupportReq) (*model.SupportTicket, error)
	History(ctx context.Context, userID int64) ([]model.SupportTicket, error)
}

type service struct {
	r supportrepo.Repo
	m Mailer
}

func New(r supportrepo.Repo, m Mailer) Service { return &service{r: r, m: m} }

func (s *service) Submit(ctx context.Context, userID int64, userEmail string, req model.SupportReq) (*model.SupportTicket, error) {
	t := &model.SupportTicket{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "OPEN",
	}
	if err := s.r.Insert(ctx, t); err != nil {
		return nil, err
	}
	if err := s.m.NotifyTicket(ctx, t, userEmail); err != nil {
		slog.Warn("support ticket mail failed", "ticket_id", t.ID, "error", err)
	}
	return t, nil
}

func (s *service) History(ctx context.Context, userID int64) ([]model.SupportTicket, error) {
	return s.r.ListByUser(ctx, userID)
}

// sendgridMailer delivers ticket notifications through SendGrid.
type sendgridMailer struct {
	apiKey string
	inbox  string
}

func NewSendgridMailer(apiKey, inbox string) Mailer {
	return &sendgridMailer{apiKey: apiKey, inbox: inbox}
}

func (m *sendgridMailer) NotifyTicket(ctx context.Context, t *model.SupportTicket, userEmail string) error {
	from := mail.NewEmail("VTU Nigeria", m.inbox)
	to := mail.NewEmail("Support", m.inbox)
	subject := fmt.Sprintf("[Ticket #%d] %s", t.ID, t.Subject)
	body := fmt.Sprintf("From: %s (user #%d)\n\n%s", userEmail, t.UserID, t.Message)

	msg := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}
	return nil
}

// logMailer is the dev fallback when no SendGrid key is configured.
type logMailer struct{}

func NewLogMailer() Mailer { return logMailer{} }

func (logMailer) NotifyTicket(_ context.Context, t *model.SupportTicket, userEmail string) error {
	slog.Info("support ticket", "ticket_id", t.ID, "subject", t.Subject, "user_email", userEmail)
	return nil
}
