package model

type ChargeType string

const (
	ChargeTypeFixed      ChargeType = "fixed"
	ChargeTypePercentage ChargeType = "percentage"
)

func (t ChargeType) Valid() bool {
	return t == ChargeTypeFixed || t == ChargeTypePercentage
}

// Charge is a fixed amount or a percentage of some base amount.
type Charge struct {
	Type  ChargeType
	Value float64
}

// IsZero reports whether the charge contributes nothing regardless of its base.
func (c *Charge) IsZero() bool {
	return c == nil || c.Value == 0
}

func FixedCharge(v float64) *Charge      { return &Charge{Type: ChargeTypeFixed, Value: v} }
func PercentageCharge(v float64) *Charge { return &Charge{Type: ChargeTypePercentage, Value: v} }

// OtherCharge is a named fixed amount such as hallmarking or certification.
type OtherCharge struct {
	Name   string
	Amount float64
}
