package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

const PriceSyncedEventType = "jewelry.price_synced.v1"

type priceSyncedRecord struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	EntityName     string    `json:"entity_name"`
	VariantID      string    `json:"variant_id"`
	VariantName    string    `json:"variant_name"`
	OldPrice       float64   `json:"old_price"`
	NewPrice       float64   `json:"new_price"`
	Unit           string    `json:"unit"`
	SyncedProducts int       `json:"synced_products"`
	FailedProducts []string  `json:"failed_products"`
	SyncedAt       time.Time `json:"synced_at"`
}

type variantRateRecord struct {
	EntityType string   `json:"entity_type"`
	EntityID   string   `json:"entity_id"`
	VariantID  string   `json:"variant_id"`
	NewPrice   *float64 `json:"new_price"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) PriceSyncedToPayload(e model.PriceSyncedEvent) ([]byte, error) {
	failed := e.FailedProducts
	if failed == nil {
		failed = []string{}
	}

	payload, err := json.Marshal(priceSyncedRecord{
		EventID:        e.EventID,
		EventType:      PriceSyncedEventType,
		EntityType:     e.EntityType.String(),
		EntityID:       e.EntityID,
		EntityName:     e.EntityName,
		VariantID:      e.VariantID,
		VariantName:    e.VariantName,
		OldPrice:       e.OldPrice,
		NewPrice:       e.NewPrice,
		Unit:           e.Unit,
		SyncedProducts: e.SyncedProducts,
		FailedProducts: failed,
		SyncedAt:       e.SyncedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal price synced event: %w", err)
	}

	return payload, nil
}

// VariantRateToModel decodes a rate feed message. Field values are checked by
// the synchronization service; only structural problems are reported here.
func (c *kafkaConverter) VariantRateToModel(data []byte) (model.SyncParams, error) {
	var rec variantRateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.SyncParams{}, errors.Join(model.ErrValidation, fmt.Errorf("failed to unmarshal variant rate: %w", err))
	}
	if rec.NewPrice == nil {
		return model.SyncParams{}, errors.Join(model.ErrValidation, errors.New("variant rate: new_price is required"))
	}

	return model.SyncParams{
		EntityType: model.EntityType(strings.ToLower(strings.TrimSpace(rec.EntityType))),
		EntityID:   rec.EntityID,
		VariantID:  rec.VariantID,
		NewPrice:   *rec.NewPrice,
	}, nil
}
