package requisition

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

// Event types published to the requisition topic.
const (
	EventCreated = "requisicao.criada"
	EventDecided = "requisicao.decidida"
)

// Event is emitted when a requisition is created or decided. Events are
// observational; email dispatch stays in the request path.
type Event struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	RequisitionID int64     `json:"requisition_id"`
	Token         string    `json:"token"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (s *Service) publishEvent(ctx context.Context, eventType string, req *entity.Requisition) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := Event{
		EventID:       uuid.NewString(),
		Type:          eventType,
		RequisitionID: req.ID,
		Token:         req.Token,
		Status:        req.Status,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal requisition event", zap.Error(err))
		return
	}
	key := []byte(fmt.Sprintf("requisicao-%d", req.ID))
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.logger.Error("publish requisition event", zap.String("type", eventType), zap.Error(err))
	}
}
