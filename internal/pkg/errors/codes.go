package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrValidation      = 1001
	ErrNotFound        = 1002
	ErrUnauthorized    = 1003
	ErrForbidden       = 1004
	ErrConflict        = 1005
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007

	// Company errors (2000-2999)
	ErrCompanyNotFound   = 2000
	ErrCompanyNameExists = 2001
	ErrAPIKeyRequired    = 2002
	ErrQuotaExceeded     = 2003
	ErrQuotaBelowZero    = 2004
	ErrInvalidTxnType    = 2005

	// File metadata errors (3000-3999)
	ErrFileMetaNotFound = 3000
	ErrFileMetaInvalid  = 3001
	ErrPresignFailed    = 3002

	// Admin client errors (4000-4999)
	ErrClientExists       = 4000
	ErrClientNotFound     = 4001
	ErrClientUnauthorized = 4002
	ErrTokenInvalid       = 4003
	ErrTokenExpired       = 4004
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrValidation:      {ErrValidation, http.StatusUnprocessableEntity, "Request validation failed"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrUnauthorized:    {ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	ErrForbidden:       {ErrForbidden, http.StatusForbidden, "Forbidden"},
	ErrConflict:        {ErrConflict, http.StatusConflict, "Resource conflict"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},

	// Company errors
	ErrCompanyNotFound:   {ErrCompanyNotFound, http.StatusNotFound, "Company not found"},
	ErrCompanyNameExists: {ErrCompanyNameExists, http.StatusConflict, "Company name already exists"},
	ErrAPIKeyRequired:    {ErrAPIKeyRequired, http.StatusBadRequest, "Company API key header is required"},
	ErrQuotaExceeded:     {ErrQuotaExceeded, http.StatusConflict, "Quota update exceeds total usage quota"},
	ErrQuotaBelowZero:    {ErrQuotaBelowZero, http.StatusConflict, "Quota update would drop used quota below zero"},
	ErrInvalidTxnType:    {ErrInvalidTxnType, http.StatusUnprocessableEntity, "Unknown file transaction type"},

	// File metadata errors
	ErrFileMetaNotFound: {ErrFileMetaNotFound, http.StatusNotFound, "File metadata not found"},
	ErrFileMetaInvalid:  {ErrFileMetaInvalid, http.StatusUnprocessableEntity, "Invalid file metadata"},
	ErrPresignFailed:    {ErrPresignFailed, http.StatusInternalServerError, "Failed to generate presigned URL"},

	// Admin client errors
	ErrClientExists:       {ErrClientExists, http.StatusNotAcceptable, "Admin client already exists"},
	ErrClientNotFound:     {ErrClientNotFound, http.StatusNotFound, "Admin client not found"},
	ErrClientUnauthorized: {ErrClientUnauthorized, http.StatusUnauthorized, "Invalid client credentials"},
	ErrTokenInvalid:       {ErrTokenInvalid, http.StatusUnauthorized, "Invalid token"},
	ErrTokenExpired:       {ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	return GetHTTPStatus(code) >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
