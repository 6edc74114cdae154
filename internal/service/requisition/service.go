package requisition

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/cache"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/config"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/mailer"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/messaging"
	repo "github.com/KevynGreenn/Izi-Hotel-Compras/internal/repository/requisition"
	"github.com/KevynGreenn/Izi-Hotel-Compras/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/KevynGreenn/Izi-Hotel-Compras/service/requisition")

// tokenBytes yields a 40-char hex token (160 bits of entropy), matching the
// capability tokens already circulating in approval emails.
const tokenBytes = 20

const paymentDateLayout = "2006-01-02"

// Store is the persistence slice the lifecycle service depends on.
type Store interface {
	Create(ctx context.Context, req *entity.Requisition) error
	GetByToken(ctx context.Context, token string) (*entity.Requisition, error)
	UpdateStatus(ctx context.Context, token, status string) (*entity.Requisition, error)
}

// CreateInput carries the requester-submitted attributes. JSON names follow
// the frontend form fields.
type CreateInput struct {
	RequesterName  string          `json:"nome" validate:"required"`
	RequesterEmail string          `json:"email" validate:"omitempty,email"`
	RequesterPhone string          `json:"telefone" validate:"required"`
	Description    string          `json:"descricao" validate:"required"`
	CostCenter     string          `json:"centroCusto" validate:"required"`
	Amount         decimal.Decimal `json:"valor"`
	PaymentDate    string          `json:"dataPagamento" validate:"required,datetime=2006-01-02"`
	PaymentMethod  string          `json:"opcaoPagamento" validate:"required"`
	SupplierPixKey string          `json:"pix" validate:"required_if=PaymentMethod Pix"`
	SupplierName   string          `json:"fornecedor" validate:"required_if=PaymentMethod Pix"`
}

// Service owns creation and status-transition logic for requisitions.
type Service struct {
	store     Store
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	sender    mailer.Sender
	publisher messaging.Client
	validate  *validator.Validate
	messaging messagingConfig
	mail      config.Mail
}

// messagingConfig contains the messaging knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Store     Store
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Sender    mailer.Sender
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:     p.Store,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		sender:    p.Sender,
		publisher: p.Publisher,
		validate:  validator.New(),
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		mail: p.Config.Mail,
	}
}

// Create validates the input, mints a token, persists the requisition as
// Pending and notifies the approver. Notification and event failures are
// logged and swallowed; persistence failures abort the operation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Requisition, error) {
	ctx, span := serviceTracer.Start(ctx, "RequisitionService.Create")
	defer span.End()

	if err := s.validate.Struct(in); err != nil {
		return nil, errorbank.BadRequest("dados da requisição inválidos", errorbank.WithCause(err))
	}
	if in.Amount.Sign() <= 0 {
		return nil, errorbank.BadRequest("valor deve ser maior que zero")
	}
	paymentDate, err := time.Parse(paymentDateLayout, in.PaymentDate)
	if err != nil {
		return nil, errorbank.BadRequest("dataPagamento inválida", errorbank.WithCause(err))
	}

	token, err := newToken()
	if err != nil {
		return nil, errorbank.Internal("failed to generate token", errorbank.WithCause(err))
	}

	now := time.Now().UTC()
	req := &entity.Requisition{
		Token:          token,
		RequesterName:  in.RequesterName,
		RequesterEmail: in.RequesterEmail,
		RequesterPhone: in.RequesterPhone,
		Description:    in.Description,
		CostCenter:     in.CostCenter,
		Amount:         in.Amount,
		PaymentDate:    paymentDate,
		PaymentMethod:  in.PaymentMethod,
		Status:         entity.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.IsPix() {
		req.SupplierPixKey = in.SupplierPixKey
		req.SupplierName = in.SupplierName
	}

	if err := s.store.Create(ctx, req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create requisition", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, req); err != nil {
		s.logger.Warn("requisition cache write failed", zap.Int64("id", req.ID), zap.Error(err))
	}

	if err := s.sender.ApprovalRequest(ctx, req.Token); err != nil {
		s.logger.Error("approval request notification failed", zap.Int64("id", req.ID), zap.Error(err))
	}

	s.publishEvent(ctx, EventCreated, req)
	return req, nil
}

// GetByToken retrieves a requisition, consulting cache when available.
func (s *Service) GetByToken(ctx context.Context, token string) (*entity.Requisition, error) {
	ctx, span := serviceTracer.Start(ctx, "RequisitionService.GetByToken")
	defer span.End()

	if req, err := s.getFromCache(ctx, token); err == nil {
		return req, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("requisition cache read failed", zap.Error(err))
	}

	req, err := s.store.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("requisição não encontrada")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load requisition", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, req); err != nil {
		s.logger.Warn("requisition cache write failed", zap.Error(err))
	}

	return req, nil
}

// Approve moves a Pending requisition to Aprovada.
func (s *Service) Approve(ctx context.Context, token string) (*entity.Requisition, error) {
	return s.decide(ctx, token, entity.StatusApproved)
}

// Reject moves a Pending requisition to Rejeitada.
func (s *Service) Reject(ctx context.Context, token string) (*entity.Requisition, error) {
	return s.decide(ctx, token, entity.StatusRejected)
}

// decide performs the guarded Pending -> terminal transition. A requisition
// that was already decided yields a Conflict and triggers no notifications.
func (s *Service) decide(ctx context.Context, token, status string) (*entity.Requisition, error) {
	ctx, span := serviceTracer.Start(ctx, "RequisitionService.Decide", trace.WithAttributes(
		attribute.String("requisition.status", status),
	))
	defer span.End()

	req, err := s.store.UpdateStatus(ctx, token, status)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, errorbank.NotFound("requisição não encontrada")
		case errors.Is(err, repo.ErrAlreadyDecided):
			return nil, errorbank.Conflict("requisição já foi decidida")
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, "repository error")
			return nil, errorbank.Internal("failed to update requisition", errorbank.WithCause(err))
		}
	}

	if err := s.storeInCache(ctx, req); err != nil {
		s.logger.Warn("requisition cache write failed", zap.Int64("id", req.ID), zap.Error(err))
	}

	if req.RequesterEmail != "" {
		if err := s.sender.RequesterStatus(ctx, req); err != nil {
			s.logger.Error("requester status notification failed", zap.Int64("id", req.ID), zap.Error(err))
		}
	}
	if status == entity.StatusApproved {
		if err := s.sender.AdminSummary(ctx, req); err != nil {
			s.logger.Error("admin summary notification failed", zap.Int64("id", req.ID), zap.Error(err))
		}
	}

	s.publishEvent(ctx, EventDecided, req)
	return req, nil
}

// ApprovalURL builds the frontend link the approver receives.
func (s *Service) ApprovalURL(token string) string {
	return s.mail.FrontendBaseURL + "/aprovar.html?token=" + token
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *Service) cacheKey(token string) string {
	return fmt.Sprintf("requisicoes:%s", token)
}

func (s *Service) getFromCache(ctx context.Context, token string) (*entity.Requisition, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(token))
	if err != nil {
		return nil, err
	}
	var req entity.Requisition
	if err := json.Unmarshal(bytes, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) storeInCache(ctx context.Context, req *entity.Requisition) error {
	if s.cache == nil || req == nil {
		return nil
	}
	bytes, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(req.Token), bytes, s.cacheTTL)
}
