package model

import "time"

type SyncParams struct {
	EntityType EntityType
	EntityID   string
	VariantID  string
	NewPrice   float64
}

type SyncResult struct {
	EntityType  EntityType
	EntityID    string
	EntityName  string
	VariantID   string
	VariantName string
	OldPrice    float64
	NewPrice    float64
	Unit        string
	// Number of products whose stored price now reflects NewPrice.
	SyncedProducts int
	Outcomes       []ProductOutcome
	HistoryID      string
	SyncedAt       time.Time
}

// ProductOutcome is the result of repricing one matched product. Err is nil on success.
type ProductOutcome struct {
	ProductID   string
	ProductName string
	OldTotal    float64
	NewTotal    float64
	Err         error
}

func (r *SyncResult) Failed() []ProductOutcome {
	var out []ProductOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

type SyncPreview struct {
	EntityType  EntityType
	EntityID    string
	EntityName  string
	VariantID   string
	VariantName string
	OldPrice    float64
	NewPrice    float64
	Unit        string
	Products    []PreviewItem
	TotalDelta  float64
}

type PreviewItem struct {
	ProductID    string
	ProductName  string
	CurrentTotal float64
	NewTotal     float64
	Delta        float64
}

// PriceSyncedEvent is published after a synchronization has been committed.
type PriceSyncedEvent struct {
	EventID        string
	EntityType     EntityType
	EntityID       string
	EntityName     string
	VariantID      string
	VariantName    string
	OldPrice       float64
	NewPrice       float64
	Unit           string
	SyncedProducts int
	FailedProducts []string
	SyncedAt       time.Time
}
