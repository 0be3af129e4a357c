package biz

import "errors"

var (
	// ErrFileKeyRequired file key missing from the metadata report
	ErrFileKeyRequired = errors.New("file key is required")

	// ErrFileNameRequired file name missing from an upload presign request
	ErrFileNameRequired = errors.New("file name is required")

	// ErrObjectKeyRequired object key missing from a download presign request
	ErrObjectKeyRequired = errors.New("object key is required")

	// ErrFileSizeNegative reported file size below zero
	ErrFileSizeNegative = errors.New("file size must be non-negative")

	// ErrNoBucketConfigured company record carries no bucket credentials
	ErrNoBucketConfigured = errors.New("company has no storage bucket configured")
)
