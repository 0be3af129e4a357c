package biz

import "errors"

var (
	// ErrCompanyNameRequired company name missing from registration
	ErrCompanyNameRequired = errors.New("company name is required")

	// ErrCompanyNameExists another company already registered the name
	ErrCompanyNameExists = errors.New("company name already exists")

	// ErrCompanyNotFound no company matches the presented API key
	ErrCompanyNotFound = errors.New("company not found")

	// ErrQuotaNegative quota fields must be non-negative
	ErrQuotaNegative = errors.New("quota values must be non-negative")

	// ErrQuotaExceedsTotal used quota may not start above the total
	ErrQuotaExceedsTotal = errors.New("used quota exceeds total usage quota")

	// ErrQuotaExceeded applying the update would exceed the total quota
	ErrQuotaExceeded = errors.New("quota update exceeds total usage quota")

	// ErrQuotaBelowZero applying the update would drop used quota below zero
	ErrQuotaBelowZero = errors.New("quota update would drop used quota below zero")

	// ErrInvalidTxnType file transaction type is not upload or delete
	ErrInvalidTxnType = errors.New("unknown file transaction type")
)
