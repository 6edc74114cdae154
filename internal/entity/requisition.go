package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Status values are persisted and served in Portuguese to stay compatible
// with the existing frontend.
const (
	StatusPending  = "Pendente"
	StatusApproved = "Aprovada"
	StatusRejected = "Rejeitada"
)

// PaymentMethodPix gates the supplier Pix fields.
const PaymentMethodPix = "Pix"

// Requisition represents a purchase requisition stored in the relational
// database. The token is the only credential needed to read or decide it.
type Requisition struct {
	bun.BaseModel `bun:"table:requisicoes"`

	ID             int64           `bun:",pk,autoincrement"`
	Token          string          `bun:"token,notnull,unique"`
	RequesterName  string          `bun:"nome_solicitante,notnull"`
	RequesterEmail string          `bun:"email_solicitante,nullzero"`
	RequesterPhone string          `bun:"telefone,notnull"`
	Description    string          `bun:"descricao,notnull"`
	CostCenter     string          `bun:"centro_custo,notnull"`
	Amount         decimal.Decimal `bun:"valor,notnull"`
	PaymentDate    time.Time       `bun:"data_pagamento,notnull"`
	PaymentMethod  string          `bun:"opcao_pagamento,notnull"`
	SupplierPixKey string          `bun:"pix_fornecedor,nullzero"`
	SupplierName   string          `bun:"nome_fornecedor,nullzero"`
	Status         string          `bun:"status,notnull,default:'Pendente'"`
	CreatedAt      time.Time       `bun:"criado_em,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `bun:"atualizado_em,nullzero"`
}

// IsPix reports whether the requisition is paid via Pix.
func (r *Requisition) IsPix() bool {
	return r.PaymentMethod == PaymentMethodPix
}

// Decided reports whether the requisition left the Pending state.
func (r *Requisition) Decided() bool {
	return r.Status != StatusPending
}
