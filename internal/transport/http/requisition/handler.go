package requisition

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/dto"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/presentation/http/response"
	service "github.com/KevynGreenn/Izi-Hotel-Compras/internal/service/requisition"
	"github.com/KevynGreenn/Izi-Hotel-Compras/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/KevynGreenn/Izi-Hotel-Compras/transport/http/requisition")

// Handler exposes requisition endpoints over HTTP. Routes keep the
// Portuguese paths the frontend already calls.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a requisition Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/requisicao")
	g.POST("", h.create)
	g.GET("/:token", h.getByToken)
	g.POST("/:token/aprovar", h.approve)
	g.POST("/:token/rejeitar", h.reject)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var in service.CreateInput
	if err := c.Bind(&in); err != nil {
		return b.WithError(errorbank.BadRequest("corpo da requisição inválido", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "requisicao.create")
	defer span.End()

	req, err := h.svc.Create(ctx, in)
	if err != nil {
		return b.WithError(err).Build()
	}

	payload := dto.CreateRequisitionResponse{
		RequisitionResponse: toDTO(req),
		ApprovalURL:         h.svc.ApprovalURL(req.Token),
	}
	return b.WithStatus(http.StatusCreated).
		WithMessage("Requisição criada com sucesso!").
		WithData(payload).
		Build()
}

func (h *Handler) getByToken(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "requisicao.getByToken")
	defer span.End()

	req, err := h.svc.GetByToken(ctx, c.Param("token"))
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(req)).Build()
}

func (h *Handler) approve(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "requisicao.approve")
	defer span.End()

	req, err := h.svc.Approve(ctx, c.Param("token"))
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Requisição aprovada com sucesso!").WithData(toDTO(req)).Build()
}

func (h *Handler) reject(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "requisicao.reject")
	defer span.End()

	req, err := h.svc.Reject(ctx, c.Param("token"))
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Requisição rejeitada com sucesso!").WithData(toDTO(req)).Build()
}

func toDTO(req *entity.Requisition) dto.RequisitionResponse {
	return dto.RequisitionResponse{
		ID:             req.ID,
		Token:          req.Token,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		RequesterPhone: req.RequesterPhone,
		Description:    req.Description,
		CostCenter:     req.CostCenter,
		Amount:         req.Amount,
		PaymentDate:    req.PaymentDate.Format("2006-01-02"),
		PaymentMethod:  req.PaymentMethod,
		SupplierPixKey: req.SupplierPixKey,
		SupplierName:   req.SupplierName,
		Status:         req.Status,
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
	}
}
