package webhook

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Adapter turns one platform's payload into the canonical intake.
type Adapter interface {
	Source() domain.Source
	Normalize(raw []byte) (domain.SaleIntake, error)
}

type Normalizer struct {
	adapters map[domain.Source]Adapter
}

func NewNormalizer(adapters ...Adapter) *Normalizer {
	n := &Normalizer{adapters: make(map[domain.Source]Adapter, len(adapters))}
	for _, a := range adapters {
		n.adapters[a.Source()] = a
	}
	return n
}

func NewDefaultNormalizer() *Normalizer {
	return NewNormalizer(CartPandaAdapter{}, ShopifyAdapter{}, GenericAdapter{})
}

func (n *Normalizer) Supports(source domain.Source) bool {
	_, ok := n.adapters[source]
	return ok
}

func (n *Normalizer) Normalize(source domain.Source, raw []byte) (domain.SaleIntake, error) {
	adapter, ok := n.adapters[source]
	if !ok {
		return domain.SaleIntake{}, fmt.Errorf("%w: %q", domain.ErrUnknownSource, source)
	}
	intake, err := adapter.Normalize(raw)
	if err != nil {
		return domain.SaleIntake{}, err
	}
	intake.Source = source
	intake.PayloadHash = PayloadHash(raw)
	return intake, nil
}

func PayloadHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func malformed(source domain.Source, reason string) error {
	return &domain.MalformedPayloadError{Source: source, Reason: reason}
}

// orderObject returns the "order" member when the body wraps the order in an
// envelope, or the body itself otherwise.
func orderObject(source domain.Source, raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, malformed(source, "body is not a JSON object")
	}
	if nested, ok := envelope["order"]; ok {
		nested = bytes.TrimSpace(nested)
		if len(nested) > 0 && nested[0] == '{' {
			return nested, nil
		}
	}
	if len(envelope) == 0 {
		return nil, malformed(source, "order object is empty")
	}
	return raw, nil
}

func buildIntake(source domain.Source, orderID string, total decimal.Decimal, hasTotal bool) (domain.SaleIntake, error) {
	if orderID == "" {
		return domain.SaleIntake{}, malformed(source, "order id is missing")
	}
	if !hasTotal {
		return domain.SaleIntake{}, malformed(source, "total value is missing or not numeric")
	}
	if total.IsNegative() {
		return domain.SaleIntake{}, malformed(source, "total value is negative")
	}
	total = total.Round(2)
	if total.GreaterThan(domain.MaxMoneyValue) {
		return domain.SaleIntake{}, malformed(source, "total value is out of range")
	}
	return domain.SaleIntake{OrderID: orderID, TotalValue: total}, nil
}
