package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	saledto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/sale"
	"github.com/LavaJover/shvark-commission-service/internal/usecase/sale"
)

// intakeEnvelope is a webhook delivery relayed through Kafka.
type intakeEnvelope struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload"`
}

type IntakeHandler struct {
	uc sale.SaleUsecase
}

func NewIntakeHandler(uc sale.SaleUsecase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// Handle feeds one relayed delivery through sale ingestion. Input that can
// never succeed is dropped so the offset moves on; storage failures are
// returned and the message is retried.
func (h *IntakeHandler) Handle(ctx context.Context, msg domain.Message) error {
	var envelope intakeEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		slog.Warn("dropping undecodable intake envelope", "key", string(msg.Key), "error", err)
		return nil
	}
	if envelope.Source == "" || len(envelope.Payload) == 0 {
		slog.Warn("dropping intake envelope without source or payload", "key", string(msg.Key))
		return nil
	}

	out, err := h.uc.IngestSale(ctx, &saledto.IngestSaleInput{
		Source:  domain.Source(envelope.Source),
		Payload: envelope.Payload,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) || errors.Is(err, domain.ErrUnknownSource) {
			slog.Warn("dropping relayed delivery", "source", envelope.Source, "error", err)
			return nil
		}
		return err
	}

	slog.Debug("relayed delivery ingested", "source", envelope.Source, "order_id", out.OrderID, "status", out.Status)
	return nil
}
