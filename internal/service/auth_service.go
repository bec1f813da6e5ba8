package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/config"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	RegistrarBanco(ctx context.Context, req dto.RegistroBancoRequest) (string, error)
}

type authService struct {
	creds   repository.CredencialRepository
	cuentas repository.CuentaRepository
	tokens  repository.SignupTokenRepository
	cfg     *config.Config
}

func NewAuthService(
	creds repository.CredencialRepository,
	cuentas repository.CuentaRepository,
	tokens repository.SignupTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{creds: creds, cuentas: cuentas, tokens: tokens, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	invalidas := apierror.Unauthorized("Credenciales inválidas")

	cred, err := s.creds.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalidas
	}
	if err != nil {
		return nil, apierror.Credential("Error al consultar el proveedor de identidad", err)
	}
	if cred.Disabled {
		return nil, apierror.Unauthorized("Usuario deshabilitado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidas
	}

	cuenta, err := s.cuentas.FindByID(ctx, cred.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.Unauthorized("La cuenta no tiene un perfil asociado")
	}
	if err != nil {
		return nil, apierror.Store("Error al obtener el perfil", err)
	}

	token, err := s.generateToken(cuenta)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.CuentaResponse{
			ID:        cuenta.ID,
			Nombre:    cuenta.Nombre,
			Email:     cuenta.Email,
			Empresa:   cuenta.Empresa,
			EmpresaID: cuenta.EmpresaID,
			Tipo:      cuenta.Tipo,
		},
	}, nil
}

// ── RegistrarBanco ────────────────────────────────────────────────────────────
// Token-gated bank administrator signup:
//   1. token must be unused
//   2. create credential
//   3. write b_admin profile (Empresa_id = own id)
//   4. consume token (CAS); losing the race undoes steps 2–3
// The token is consumed last because a used token can never be released.
func (s *authService) RegistrarBanco(ctx context.Context, req dto.RegistroBancoRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	token := strings.TrimSpace(req.Token)

	if _, err := s.tokens.FindUnused(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apierror.TokenInvalid("Token inválido o ya utilizado")
		}
		return "", apierror.Store("Error al validar el token", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", apierror.Credential("Error al procesar la contraseña", err)
	}
	cred := &model.Credencial{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  req.Nombre,
		PasswordHash: string(hash),
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apierror.Credential("El email ya está registrado", err)
		}
		return "", apierror.Credential("Error al crear el usuario", err)
	}

	cuenta := &model.Cuenta{
		ID:        cred.ID,
		Nombre:    req.Nombre,
		Empresa:   req.Empresa,
		EmpresaID: cred.ID,
		Tipo:      model.TipoBancoAdmin,
		Email:     email,
	}
	if err := s.cuentas.Upsert(ctx, cuenta); err != nil {
		s.deshacerRegistro(ctx, cred.ID, false)
		return "", apierror.Store("Error al crear el perfil", err)
	}

	empresa := req.Empresa
	if _, err := s.tokens.ConsumeIfUnused(ctx, token, cred.ID, &empresa, time.Now().UTC()); err != nil {
		s.deshacerRegistro(ctx, cred.ID, true)
		if errors.Is(err, repository.ErrNotFound) {
			return "", apierror.TokenInvalid("Token inválido o ya utilizado")
		}
		return "", apierror.Store("Error al marcar el token como usado", err)
	}

	log.Info().Str("user_id", cred.ID).Str("empresa", req.Empresa).Msg("registro: banco registrado")
	return cred.ID, nil
}

func (s *authService) deshacerRegistro(ctx context.Context, id string, conPerfil bool) {
	ctx = context.WithoutCancel(ctx)
	if conPerfil {
		if err := s.cuentas.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Error().Err(err).Str("user_id", id).Msg("registro: no se pudo eliminar el perfil")
		}
	}
	if err := s.creds.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Str("user_id", id).Msg("registro: no se pudo eliminar la credencial")
	}
}

func (s *authService) generateToken(c *model.Cuenta) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    c.ID,
		"email":      c.Email,
		"tipo":       c.Tipo,
		"empresa_id": c.EmpresaID,
		"exp":        now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
