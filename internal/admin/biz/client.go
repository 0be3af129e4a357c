package biz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminClient is a machine principal allowed to request admin tokens
type AdminClient struct {
	ID           string
	ClientID     string
	HashedSecret string
	CreatedAt    time.Time
}

// AdminClientRepo defines the interface for admin client persistence
type AdminClientRepo interface {
	Create(ctx context.Context, client *AdminClient) error
	GetByClientID(ctx context.Context, clientID string) (*AdminClient, error)
}

// AdminUseCase contains business logic for admin client management
type AdminUseCase struct {
	repo   AdminClientRepo
	tokens *TokenManager
}

func NewAdminUseCase(repo AdminClientRepo, tokens *TokenManager) *AdminUseCase {
	return &AdminUseCase{
		repo:   repo,
		tokens: tokens,
	}
}

// RegisterClient stores a new admin client with a bcrypt-hashed secret.
// The plaintext secret is never persisted.
func (uc *AdminUseCase) RegisterClient(ctx context.Context, clientID, clientSecret string) (*AdminClient, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}
	if clientSecret == "" {
		return nil, ErrClientSecretRequired
	}

	if _, err := uc.repo.GetByClientID(ctx, clientID); err == nil {
		return nil, ErrClientExists
	} else if !errors.Is(err, ErrClientNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &AdminClient{
		ID:           uuid.NewString(),
		ClientID:     clientID,
		HashedSecret: string(hashed),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// ValidateClient checks a client id/secret pair against the stored hash
func (uc *AdminUseCase) ValidateClient(ctx context.Context, clientID, clientSecret string) (*AdminClient, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	client, err := uc.repo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(client.HashedSecret), []byte(clientSecret)) != nil {
		return nil, ErrInvalidCredentials
	}

	return client, nil
}

// IssueToken validates credentials and signs an access token
func (uc *AdminUseCase) IssueToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	client, err := uc.ValidateClient(ctx, clientID, clientSecret)
	if err != nil {
		return "", err
	}

	return uc.tokens.Generate(client.ClientID)
}

// VerifyToken checks a token and confirms its client still exists
func (uc *AdminUseCase) VerifyToken(ctx context.Context, token string) (string, error) {
	clientID, err := uc.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	if _, err := uc.repo.GetByClientID(ctx, clientID); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	return clientID, nil
}
