package service

import (
	"context"
	"errors"
	"strings"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type SubcuentaService interface {
	Provisionar(ctx context.Context, req dto.CrearSubcuentaRequest) (string, error)
	// DesprovisionarPorEmail revokes the credential. When ownerID is not empty
	// the credential's profile must belong to that owner.
	DesprovisionarPorEmail(ctx context.Context, ownerID, email string) error
}

type subcuentaService struct {
	creds   repository.CredencialRepository
	cuentas repository.CuentaRepository
}

func NewSubcuentaService(creds repository.CredencialRepository, cuentas repository.CuentaRepository) SubcuentaService {
	return &subcuentaService{creds: creds, cuentas: cuentas}
}

// ── Provisionar ───────────────────────────────────────────────────────────────
// Two-step saga: credential first, profile second.
//   - Profile write failure → compensating credential deletion.
//   - Retry with the same e-mail and password converges: an orphan credential
//     (no profile) is reused, and a completed provisioning for the same owner
//     returns the existing id.

func (s *subcuentaService) Provisionar(ctx context.Context, req dto.CrearSubcuentaRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	owner := strings.TrimSpace(req.UserID)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" || owner == "" {
		return "", apierror.Validation("name, email, password y userId son requeridos")
	}

	id, done, err := s.reuseExisting(ctx, email, req.Password, owner)
	if err != nil {
		return "", err
	}
	if done {
		return id, nil
	}
	if id == "" {
		id, err = s.crearCredencial(ctx, name, email, req.Password)
		if err != nil {
			return "", err
		}
	}

	cuenta := &model.Cuenta{
		ID:        id,
		Nombre:    name,
		Empresa:   "",
		EmpresaID: owner,
		Tipo:      model.TipoBancoVenta,
		Email:     email,
	}
	if err := s.cuentas.Upsert(ctx, cuenta); err != nil {
		s.compensar(ctx, id)
		return "", apierror.Store("Error al crear el perfil de la subcuenta", err)
	}
	return id, nil
}

// reuseExisting inspects a credential already registered under email.
// It returns (id, true) when provisioning already completed for this owner,
// (id, false) for an orphan credential whose profile still has to be written
// and ("", false) when the e-mail is free.
func (s *subcuentaService) reuseExisting(ctx context.Context, email, password, owner string) (string, bool, error) {
	existing, err := s.creds.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apierror.Credential("Error al consultar el proveedor de identidad", err)
	}

	yaRegistrado := apierror.Credential("El email ya está registrado", repository.ErrDuplicate)
	if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
		return "", false, yaRegistrado
	}

	cuenta, err := s.cuentas.FindByID(ctx, existing.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Info().Str("user_id", existing.ID).Msg("subcuenta: retomando credencial sin perfil")
		return existing.ID, false, nil
	case err != nil:
		return "", false, apierror.Store("Error al consultar el perfil", err)
	case cuenta.EmpresaID == owner && cuenta.Tipo == model.TipoBancoVenta:
		return existing.ID, true, nil
	default:
		return "", false, yaRegistrado
	}
}

func (s *subcuentaService) crearCredencial(ctx context.Context, name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apierror.Credential("Error al procesar la contraseña", err)
	}
	cred := &model.Credencial{
		ID:            uuid.NewString(),
		Email:         email,
		DisplayName:   name,
		PasswordHash:  string(hash),
		Disabled:      false,
		EmailVerified: false,
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apierror.Credential("El email ya está registrado", err)
		}
		return "", apierror.Credential("Error al crear el usuario", err)
	}
	return cred.ID, nil
}

// compensar removes a credential whose profile could not be written. If the
// deletion fails too the orphan is logged; a retry of Provisionar reclaims it.
func (s *subcuentaService) compensar(ctx context.Context, id string) {
	if err := s.creds.Delete(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Str("user_id", id).Msg("subcuenta: compensación fallida, credencial huérfana")
		return
	}
	log.Warn().Str("user_id", id).Msg("subcuenta: credencial eliminada tras fallo del perfil")
}

// ── Desprovisionar ────────────────────────────────────────────────────────────

func (s *subcuentaService) DesprovisionarPorEmail(ctx context.Context, ownerID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apierror.Validation("email es requerido")
	}
	cred, err := s.creds.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NotFound("Usuario no encontrado")
	}
	if err != nil {
		return apierror.Credential("Error al consultar el proveedor de identidad", err)
	}

	if ownerID != "" {
		cuenta, err := s.cuentas.FindByID(ctx, cred.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return apierror.Store("Error al consultar el perfil", err)
		}
		if cuenta == nil || cuenta.EmpresaID != ownerID || cuenta.ID == ownerID {
			return apierror.Forbidden("La cuenta no pertenece a su empresa")
		}
	}

	if err := s.creds.Delete(ctx, cred.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound("Usuario no encontrado")
		}
		return apierror.Credential("Error al eliminar el usuario", err)
	}
	return nil
}
