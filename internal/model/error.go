package model

import "errors"

var (
	ErrValidation       = errors.New("validation error")   // 400
	ErrMaterialNotFound = errors.New("material not found") // 404
	ErrVariantNotFound  = errors.New("variant not found")  // 404
	ErrProductNotFound  = errors.New("product not found")  // 404
	ErrProductConflict  = errors.New("product conflict")   // 409
)
