package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/config"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

// Sender delivers requisition notifications. Delivery is best-effort: the
// lifecycle service logs and swallows every error returned here, so a mail
// outage never fails the triggering HTTP operation.
type Sender interface {
	// ApprovalRequest emails the configured approver a link embedding the
	// requisition token.
	ApprovalRequest(ctx context.Context, token string) error
	// RequesterStatus emails the requester the decision outcome. It is a
	// no-op when the requisition carries no requester email.
	RequesterStatus(ctx context.Context, req *entity.Requisition) error
	// AdminSummary emails the administrative address a full rendered
	// summary of an approved requisition.
	AdminSummary(ctx context.Context, req *entity.Requisition) error
}

// Module provides the mail sender to Fx.
var Module = fx.Provide(NewSender)

// sendClient is the slice of the SendGrid client we depend on; tests
// substitute a recording stub.
type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// NewSender builds the configured sender (sendgrid or noop).
func NewSender(cfg config.Config, logger *zap.Logger) Sender {
	if !cfg.Mail.Enabled {
		logger.Info("mail disabled; using noop sender")

		return noopSender{}
	}
	return &sendgridSender{
		client: sendgrid.NewSendClient(cfg.Mail.APIKey),
		cfg:    cfg.Mail,
		logger: logger,
	}
}

type noopSender struct{}

func (noopSender) ApprovalRequest(context.Context, string) error              { return nil }
func (noopSender) RequesterStatus(context.Context, *entity.Requisition) error { return nil }
func (noopSender) AdminSummary(context.Context, *entity.Requisition) error    { return nil }

type sendgridSender struct {
	client sendClient
	cfg    config.Mail
	logger *zap.Logger
}

func (s *sendgridSender) ApprovalRequest(ctx context.Context, token string) error {
	if s.cfg.ApproverAddress == "" {
		return nil
	}
	link := approvalLink(s.cfg.FrontendBaseURL, token)
	body, err := renderApprovalRequest(link)
	if err != nil {
		return fmt.Errorf("render approval request: %w", err)
	}
	return s.send(ctx, s.cfg.ApproverAddress, "Nova Requisição de Compra para Aprovação", body)
}

func (s *sendgridSender) RequesterStatus(ctx context.Context, req *entity.Requisition) error {
	if req.RequesterEmail == "" {
		return nil
	}
	body, err := renderRequesterStatus(req)
	if err != nil {
		return fmt.Errorf("render requester status: %w", err)
	}
	subject := "Requisição de Compra " + req.Status
	return s.send(ctx, req.RequesterEmail, subject, body)
}

func (s *sendgridSender) AdminSummary(ctx context.Context, req *entity.Requisition) error {
	if s.cfg.AdminAddress == "" {
		return nil
	}
	body, err := renderAdminSummary(req)
	if err != nil {
		return fmt.Errorf("render admin summary: %w", err)
	}
	return s.send(ctx, s.cfg.AdminAddress, "Resumo da Requisição Aprovada", body)
}

func (s *sendgridSender) send(ctx context.Context, to, subject, htmlBody string) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	msg := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	s.logger.Debug("notification sent", zap.String("subject", subject))
	return nil
}

func approvalLink(baseURL, token string) string {
	return baseURL + "/aprovar.html?token=" + token
}
