package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"
)

// ValidacionToken is the outcome of a token lookup. Valid=false is a normal
// result for unknown or already used tokens.
type ValidacionToken struct {
	Valid       bool
	TokenID     string
	Description string
}

type TokenService interface {
	Validar(ctx context.Context, token string) (ValidacionToken, error)
	Consumir(ctx context.Context, token, usedBy string, companyName *string) error
}

type tokenService struct {
	repo repository.SignupTokenRepository
	now  func() time.Time
}

func NewTokenService(repo repository.SignupTokenRepository) TokenService {
	return &tokenService{repo: repo, now: time.Now}
}

func (s *tokenService) Validar(ctx context.Context, token string) (ValidacionToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ValidacionToken{}, apierror.Validation("Token es requerido")
	}
	t, err := s.repo.FindUnused(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ValidacionToken{Valid: false}, nil
	}
	if err != nil {
		return ValidacionToken{}, apierror.Store("Error al validar el token", err)
	}
	return ValidacionToken{Valid: true, TokenID: t.ID, Description: t.Description}, nil
}

// Consumir redeems the token exactly once. The store applies the update only
// while used is still false, so concurrent callers cannot both succeed.
func (s *tokenService) Consumir(ctx context.Context, token, usedBy string, companyName *string) error {
	token = strings.TrimSpace(token)
	usedBy = strings.TrimSpace(usedBy)
	if token == "" || usedBy == "" {
		return apierror.Validation("Token y usuario son requeridos")
	}
	if companyName != nil && strings.TrimSpace(*companyName) == "" {
		companyName = nil
	}

	_, err := s.repo.ConsumeIfUnused(ctx, token, usedBy, companyName, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.TokenInvalid("Token inválido o ya utilizado")
	}
	if err != nil {
		return apierror.Store("Error al marcar el token como usado", err)
	}
	return nil
}
