package requisition

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/database"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

var repoTracer = otel.Tracer("github.com/KevynGreenn/Izi-Hotel-Compras/repository/requisition")

// ErrNotFound is returned when no requisition matches the token.
var ErrNotFound = errors.New("requisition not found")

// ErrAlreadyDecided is returned when a status update targets a requisition
// that already left the Pending state.
var ErrAlreadyDecided = errors.New("requisition already decided")

// Repository encapsulates read/write access for requisitions.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new requisition using the write connection. The token
// column's unique constraint guards against collisions.
func (r *Repository) Create(ctx context.Context, req *entity.Requisition) error {
	if req == nil {
		return errors.New("nil requisition")
	}
	ctx, span := repoTracer.Start(ctx, "RequisitionRepository.Create")
	defer span.End()

	_, err := r.writer.NewInsert().Model(req).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByToken fetches a requisition by its opaque token using the read
// replica when available.
func (r *Repository) GetByToken(ctx context.Context, token string) (*entity.Requisition, error) {
	ctx, span := repoTracer.Start(ctx, "RequisitionRepository.GetByToken")
	defer span.End()

	req := new(entity.Requisition)
	err := r.reader.NewSelect().Model(req).Where("token = ?", token).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return req, nil
}

// UpdateStatus moves a Pending requisition to the given terminal status and
// returns the updated row. The status guard in the WHERE clause makes the
// transition atomic; a requisition that was already decided is reported as
// ErrAlreadyDecided rather than silently re-updated.
func (r *Repository) UpdateStatus(ctx context.Context, token, status string) (*entity.Requisition, error) {
	ctx, span := repoTracer.Start(ctx, "RequisitionRepository.UpdateStatus", trace.WithAttributes(
		attribute.String("requisition.status", status),
	))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model((*entity.Requisition)(nil)).
		Set("status = ?", status).
		Set("atualizado_em = ?", time.Now().UTC()).
		Where("token = ?", token).
		Where("status = ?", entity.StatusPending).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if affected == 0 {
		// Either the token is unknown or another transition won the race.
		if _, getErr := r.GetByToken(ctx, token); getErr != nil {
			span.SetStatus(codes.Error, "not found")
			return nil, getErr
		}
		span.SetStatus(codes.Error, "already decided")
		return nil, ErrAlreadyDecided
	}

	return r.GetByToken(ctx, token)
}
