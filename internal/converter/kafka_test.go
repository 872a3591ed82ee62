package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func TestPriceSyncedToPayload(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	payload, err := NewKafkaConverter().PriceSyncedToPayload(model.PriceSyncedEvent{
		EventID:        "e-1",
		EntityType:     model.EntityTypeMetal,
		EntityID:       "m-1",
		EntityName:     "Gold",
		VariantID:      "v-22",
		VariantName:    "22K Gold",
		OldPrice:       6200,
		NewPrice:       6350.5,
		Unit:           model.UnitGram,
		SyncedProducts: 4,
		SyncedAt:       at,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, PriceSyncedEventType, got["event_type"])
	assert.Equal(t, "metal", got["entity_type"])
	assert.Equal(t, 6350.5, got["new_price"])
	assert.Equal(t, 4.0, got["synced_products"])
	assert.Equal(t, []any{}, got["failed_products"])
	assert.Equal(t, "2026-03-04T05:00:00Z", got["synced_at"])
}

func TestVariantRateToModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    model.SyncParams
		wantErr bool
	}{
		{
			name: "ok",
			data: `{"entity_type":" Gemstone ","entity_id":"g-1","variant_id":"v-1","new_price":52000}`,
			want: model.SyncParams{EntityType: model.EntityTypeGemstone, EntityID: "g-1", VariantID: "v-1", NewPrice: 52000},
		},
		{
			name: "zero price is passed through",
			data: `{"entity_type":"metal","entity_id":"m-1","variant_id":"v-1","new_price":0}`,
			want: model.SyncParams{EntityType: model.EntityTypeMetal, EntityID: "m-1", VariantID: "v-1"},
		},
		{name: "missing price", data: `{"entity_type":"metal","entity_id":"m-1","variant_id":"v-1"}`, wantErr: true},
		{name: "malformed json", data: `{"entity_type":`, wantErr: true},
		{name: "price as string", data: `{"new_price":"6200"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewKafkaConverter().VariantRateToModel([]byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
