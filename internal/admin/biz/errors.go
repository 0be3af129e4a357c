package biz

import "errors"

var (
	// ErrClientIDRequired client id missing from the request
	ErrClientIDRequired = errors.New("client id is required")

	// ErrClientSecretRequired client secret missing from the request
	ErrClientSecretRequired = errors.New("client secret is required")

	// ErrClientExists client id already registered
	ErrClientExists = errors.New("admin client already exists")

	// ErrClientNotFound no client matches the presented id
	ErrClientNotFound = errors.New("admin client not found")

	// ErrInvalidCredentials secret does not match the stored hash
	ErrInvalidCredentials = errors.New("invalid client credentials")

	// ErrInvalidToken token is malformed, expired or not a client token
	ErrInvalidToken = errors.New("invalid token")
)
