package biz

import (
	"crypto/rand"
	"fmt"
)

// APIKeyPrefix marks every key issued by this service.
const APIKeyPrefix = "shbkp_"

const (
	apiKeyLength = 32
	apiKeyChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateAPIKey produces an unguessable bearer token for a company.
// The token is the service prefix followed by 32 random alphanumerics.
// Bytes outside the largest multiple of the charset size are rejected
// so every character is equally likely.
func GenerateAPIKey() (string, error) {
	const maxByte = 256 - 256%len(apiKeyChars)

	key := make([]byte, 0, apiKeyLength)
	buf := make([]byte, apiKeyLength*2)
	for len(key) < apiKeyLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate API key: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			key = append(key, apiKeyChars[int(b)%len(apiKeyChars)])
			if len(key) == apiKeyLength {
				break
			}
		}
	}

	return APIKeyPrefix + string(key), nil
}
