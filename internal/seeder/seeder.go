package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/database"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

// Module provides the Seeder to Fx for CLI use.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Requisitions seeds example purchase requisitions if they are missing.
// Tokens are fixed so reruns stay idempotent.
func (s *Seeder) Requisitions(ctx context.Context) error {
	now := time.Now().UTC()
	paymentDate := now.AddDate(0, 0, 14).Truncate(24 * time.Hour)

	samples := []entity.Requisition{
		{
			Token:          "0102030405060708090a0b0c0d0e0f1011121314",
			RequesterName:  "Ana Souza",
			RequesterEmail: "ana.souza@example.com",
			RequesterPhone: "+55 11 99999-0000",
			Description:    "Cadeiras para o escritório da recepção",
			CostCenter:     "CC-10",
			Amount:         decimal.NewFromFloat(450.00),
			PaymentDate:    paymentDate,
			PaymentMethod:  "Boleto",
			Status:         entity.StatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			Token:          "15161718191a1b1c1d1e1f202122232425262728",
			RequesterName:  "Carlos Lima",
			RequesterPhone: "+55 11 98888-1111",
			Description:    "Manutenção do ar-condicionado do 3º andar",
			CostCenter:     "CC-22",
			Amount:         decimal.NewFromFloat(1280.50),
			PaymentDate:    paymentDate,
			PaymentMethod:  entity.PaymentMethodPix,
			SupplierPixKey: "financeiro@climatech.example.com",
			SupplierName:   "ClimaTech Refrigeração",
			Status:         entity.StatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	for _, sample := range samples {
		req := sample
		_, err := s.db.NewInsert().Model(&req).
			On("CONFLICT (token) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded requisitions", zap.Int("count", len(samples)))
	}
	return nil
}
