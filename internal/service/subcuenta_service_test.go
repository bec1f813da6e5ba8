package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository/memory"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubcuentaSvc() (service.SubcuentaService, *memory.CredencialRepo, *memory.CuentaRepo) {
	creds := memory.NewCredencialRepo()
	cuentas := memory.NewCuentaRepo()
	return service.NewSubcuentaService(creds, cuentas), creds, cuentas
}

func ana(owner string) dto.CrearSubcuentaRequest {
	return dto.CrearSubcuentaRequest{Name: "Ana", Email: "ana@x.com", Password: "pw123", UserID: owner}
}

// ── Tests: Provisionar ────────────────────────────────────────────────────────

func TestProvisionar_Escenario(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	ctx := context.Background()

	id, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	perfil, err := cuentas.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ownerA", perfil.EmpresaID)
	assert.Equal(t, model.TipoBancoVenta, perfil.Tipo)
	assert.Equal(t, "", perfil.Empresa)
	assert.Equal(t, "Ana", perfil.Nombre)
	assert.Equal(t, "ana@x.com", perfil.Email)

	cred, err := creds.FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, cred.ID)
	assert.False(t, cred.Disabled)
	assert.False(t, cred.EmailVerified)
	assert.NotEqual(t, "pw123", cred.PasswordHash)
}

func TestProvisionar_CamposFaltantes(t *testing.T) {
	svc, creds, _ := newSubcuentaSvc()

	_, err := svc.Provisionar(context.Background(), dto.CrearSubcuentaRequest{Name: "Ana", Email: "ana@x.com"})
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Zero(t, creds.Len())
}

func TestProvisionar_NombreEnBlanco(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	req := ana("ownerA")
	req.Name = "   "

	_, err := svc.Provisionar(context.Background(), req)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Zero(t, creds.Len())
	assert.Zero(t, cuentas.Len())
}

func TestProvisionar_NombreRecortado(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	ctx := context.Background()
	req := ana("ownerA")
	req.Name = "  Ana López "

	id, err := svc.Provisionar(ctx, req)
	require.NoError(t, err)

	perfil, _ := cuentas.FindByID(ctx, id)
	assert.Equal(t, "Ana López", perfil.Nombre)
	cred, _ := creds.FindByEmail(ctx, "ana@x.com")
	assert.Equal(t, "Ana López", cred.DisplayName)
}

func TestProvisionar_ErrorDelProveedor(t *testing.T) {
	svc, creds, _ := newSubcuentaSvc()
	creds.CreateErr = errors.New("quota exceeded")

	_, err := svc.Provisionar(context.Background(), ana("ownerA"))
	assert.Equal(t, apierror.KindCredential, apierror.KindOf(err))
	assert.Equal(t, 500, apierror.StatusOf(err))
}

func TestProvisionar_FalloDePerfilCompensa(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	cuentas.UpsertErr = errors.New("write conflict")

	_, err := svc.Provisionar(context.Background(), ana("ownerA"))
	assert.Equal(t, apierror.KindStore, apierror.KindOf(err))
	assert.Zero(t, creds.Len(), "la credencial debe eliminarse tras el fallo del perfil")
}

// A failed compensation leaves an orphan credential; retrying with the same
// e-mail and password reclaims it instead of reporting a duplicate.
func TestProvisionar_ReintentoRetomaHuerfana(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	ctx := context.Background()
	cuentas.UpsertErr = errors.New("write conflict")
	creds.DeleteErr = errors.New("provider down")

	_, err := svc.Provisionar(ctx, ana("ownerA"))
	require.Error(t, err)
	require.Equal(t, 1, creds.Len())
	huerfana, _ := creds.FindByEmail(ctx, "ana@x.com")

	cuentas.UpsertErr = nil
	creds.DeleteErr = nil
	id, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)
	assert.Equal(t, huerfana.ID, id)
	assert.Equal(t, 1, creds.Len())

	perfil, err := cuentas.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ownerA", perfil.EmpresaID)
}

func TestProvisionar_ReintentoTrasExito(t *testing.T) {
	svc, creds, _ := newSubcuentaSvc()
	ctx := context.Background()

	first, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)
	second, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, creds.Len())
}

func TestProvisionar_EmailDeOtroDueno(t *testing.T) {
	svc, _, _ := newSubcuentaSvc()
	ctx := context.Background()
	_, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	_, err = svc.Provisionar(ctx, ana("ownerB"))
	assert.Equal(t, apierror.KindCredential, apierror.KindOf(err))
}

func TestProvisionar_EmailRegistradoOtraContrasena(t *testing.T) {
	svc, _, _ := newSubcuentaSvc()
	ctx := context.Background()
	_, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	req := ana("ownerA")
	req.Password = "otra-clave"
	req.Email = "ANA@x.com"
	_, err = svc.Provisionar(ctx, req)
	assert.Equal(t, apierror.KindCredential, apierror.KindOf(err))
}

// ── Tests: DesprovisionarPorEmail ─────────────────────────────────────────────

func TestDesprovisionar_EliminaCredencial(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	ctx := context.Background()
	id, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	require.NoError(t, svc.DesprovisionarPorEmail(ctx, "ownerA", "ana@x.com"))
	assert.Zero(t, creds.Len())

	// The profile document is left untouched.
	_, err = cuentas.FindByID(ctx, id)
	assert.NoError(t, err)
}

func TestDesprovisionar_SinDuenoNoVerificaPerfil(t *testing.T) {
	svc, creds, _ := newSubcuentaSvc()
	ctx := context.Background()
	_, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	require.NoError(t, svc.DesprovisionarPorEmail(ctx, "", "ana@x.com"))
	assert.Zero(t, creds.Len())
}

func TestDesprovisionar_Inexistente(t *testing.T) {
	svc, _, _ := newSubcuentaSvc()

	err := svc.DesprovisionarPorEmail(context.Background(), "ownerA", "nadie@x.com")
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestDesprovisionar_OtroDueno(t *testing.T) {
	svc, creds, _ := newSubcuentaSvc()
	ctx := context.Background()
	_, err := svc.Provisionar(ctx, ana("ownerA"))
	require.NoError(t, err)

	err = svc.DesprovisionarPorEmail(ctx, "ownerB", "ana@x.com")
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
	assert.Equal(t, 1, creds.Len())
}

func TestDesprovisionar_AdminNoSeEliminaASiMismo(t *testing.T) {
	svc, creds, cuentas := newSubcuentaSvc()
	ctx := context.Background()
	require.NoError(t, creds.Create(ctx, &model.Credencial{ID: "admin1", Email: "admin@banco.mx"}))
	require.NoError(t, cuentas.Upsert(ctx, &model.Cuenta{ID: "admin1", EmpresaID: "admin1", Tipo: model.TipoBancoAdmin}))

	err := svc.DesprovisionarPorEmail(ctx, "admin1", "admin@banco.mx")
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
}
