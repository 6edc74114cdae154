package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionResponse represents a requisition as exposed via HTTP. JSON
// field names follow the frontend wire contract inherited from the original
// deployment.
type RequisitionResponse struct {
	ID             int64           `json:"id"`
	Token          string          `json:"token"`
	RequesterName  string          `json:"nome"`
	RequesterEmail string          `json:"email,omitempty"`
	RequesterPhone string          `json:"telefone"`
	Description    string          `json:"descricao"`
	CostCenter     string          `json:"centroCusto"`
	Amount         decimal.Decimal `json:"valor"`
	PaymentDate    string          `json:"dataPagamento"`
	PaymentMethod  string          `json:"opcaoPagamento"`
	SupplierPixKey string          `json:"pix,omitempty"`
	SupplierName   string          `json:"fornecedor,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"criadoEm"`
	UpdatedAt      time.Time       `json:"atualizadoEm"`
}

// CreateRequisitionResponse is returned on creation: the persisted record
// plus the approval link the approver receives by email.
type CreateRequisitionResponse struct {
	RequisitionResponse
	ApprovalURL string `json:"aprovarUrl"`
}
