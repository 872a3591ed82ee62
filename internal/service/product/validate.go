package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

func validateParams(p model.ProductParams) error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name must be non-empty"))
	}

	for i, l := range p.Metals {
		if strings.TrimSpace(l.MaterialID) == "" || strings.TrimSpace(l.VariantID) == "" {
			errs = append(errs, fmt.Errorf("metals[%d]: material and variant ids must be non-empty", i))
		}
		if !positive(l.Weight) {
			errs = append(errs, fmt.Errorf("metals[%d]: weight must be positive", i))
		}
		errs = appendChargeErr(errs, fmt.Sprintf("metals[%d].wastage", i), l.Wastage)
	}

	for i, l := range p.Gemstones {
		if strings.TrimSpace(l.MaterialID) == "" || strings.TrimSpace(l.VariantID) == "" {
			errs = append(errs, fmt.Errorf("gemstones[%d]: material and variant ids must be non-empty", i))
		}
		if !positive(l.Weight) {
			errs = append(errs, fmt.Errorf("gemstones[%d]: weight must be positive", i))
		}
		if l.Quantity < 1 {
			errs = append(errs, fmt.Errorf("gemstones[%d]: quantity must be at least 1", i))
		}
		errs = appendChargeErr(errs, fmt.Sprintf("gemstones[%d].wastage", i), l.Wastage)
	}

	errs = appendChargeErr(errs, "making_charge", &p.MakingCharge)
	errs = appendChargeErr(errs, "wastage_charge", p.WastageCharge)
	errs = appendCommonErrs(errs, p.GSTPercentage, p.OtherCharges)

	return joinValidation(errs)
}

func validateInput(in model.PriceInput) error {
	var errs []error

	for i, l := range in.Metals {
		if !nonNegative(l.WeightGrams) || !nonNegative(l.PricePerGram) {
			errs = append(errs, fmt.Errorf("metals[%d]: weight and price must be non-negative numbers", i))
		}
		errs = appendChargeErr(errs, fmt.Sprintf("metals[%d].wastage", i), l.Wastage)
	}
	for i, l := range in.Gemstones {
		if !nonNegative(l.WeightCarats) || !nonNegative(l.PricePerCarat) || l.Quantity < 0 {
			errs = append(errs, fmt.Errorf("gemstones[%d]: weight, quantity and price must be non-negative", i))
		}
		errs = appendChargeErr(errs, fmt.Sprintf("gemstones[%d].wastage", i), l.Wastage)
	}

	errs = appendChargeErr(errs, "making_charge", in.MakingCharge)
	errs = appendChargeErr(errs, "wastage_charge", in.WastageCharge)
	errs = appendCommonErrs(errs, in.GSTPercentage, in.OtherCharges)

	return joinValidation(errs)
}

func appendCommonErrs(errs []error, gst float64, other []model.OtherCharge) []error {
	if !nonNegative(gst) || gst > 100 {
		errs = append(errs, errors.New("gst percentage must be within [0, 100]"))
	}
	for i, c := range other {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("other_charges[%d]: name must be non-empty", i))
		}
		if !nonNegative(c.Amount) {
			errs = append(errs, fmt.Errorf("other_charges[%d]: amount must be non-negative", i))
		}
	}
	return errs
}

// An absent charge and a zero charge without a type are both accepted.
func appendChargeErr(errs []error, field string, c *model.Charge) []error {
	if c == nil || (c.Type == "" && c.Value == 0) {
		return errs
	}
	if !c.Type.Valid() {
		return append(errs, fmt.Errorf("%s: unknown charge type %q", field, c.Type))
	}
	if !nonNegative(c.Value) {
		return append(errs, fmt.Errorf("%s: value must be non-negative", field))
	}
	return errs
}

func joinValidation(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{model.ErrValidation}, errs...)...)
}

func nonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

func positive(f float64) bool {
	return nonNegative(f) && f > 0
}
