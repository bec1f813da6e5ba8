package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository/memory"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func dec(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

type mercado struct {
	sol     *memory.SolicitudRepo
	notifs  *memory.NotificacionRepo
	cuentas *memory.CuentaRepo
	svc     service.PropuestaService
}

func newMercado(t *testing.T, mail service.EmailDispatcher) mercado {
	t.Helper()
	sol := memory.NewSolicitudRepo()
	sol.Seed(
		model.Solicitud{ID: "S1", UserID: "borrower1", Monto: dec(t, "15000"), Plazo: 12},
		model.Propuesta{ID: "P1", SolicitudID: "S1", LenderID: "L1", Empresa: "Banco Norte",
			Monto: dec(t, "15000.5"), Tasa: dec(t, "18.25"), Comision: dec(t, "2"), Plazo: 12},
		model.Propuesta{ID: "P2", SolicitudID: "S1", LenderID: "L2", Empresa: "Banco Sur",
			Monto: dec(t, "14000"), Tasa: dec(t, "21"), Comision: dec(t, "1.5"), Plazo: 12},
		model.Propuesta{ID: "P3", SolicitudID: "S1", LenderID: "L2", Empresa: "Banco Sur",
			Monto: dec(t, "13000"), Tasa: dec(t, "20"), Comision: dec(t, "1"), Plazo: 24},
	)
	notifs := memory.NewNotificacionRepo()
	cuentas := memory.NewCuentaRepo()
	return mercado{sol, notifs, cuentas, service.NewPropuestaService(sol, notifs, cuentas, mail)}
}

func seedMercado(t *testing.T) (*memory.SolicitudRepo, *memory.NotificacionRepo, service.PropuestaService) {
	t.Helper()
	m := newMercado(t, nil)
	return m.sol, m.notifs, m.svc
}

func TestNotificarNuevaPropuesta(t *testing.T) {
	_, notifs, svc := seedMercado(t)
	ctx := context.Background()

	id, err := svc.NotificarNuevaPropuesta(ctx, "P1")
	require.NoError(t, err)

	n, ok := notifs.Get(id)
	require.True(t, ok)
	assert.Equal(t, "borrower1", n.RecipientID)
	assert.Equal(t, model.NotifNuevaPropuesta, n.Type)
	assert.False(t, n.Read)
	assert.Contains(t, n.Message, "$15000.50")
	assert.Equal(t, "15000.50", n.Data["monto"])
	assert.Equal(t, "18.25", n.Data["tasa"])
	assert.Equal(t, "P1", n.Data["propuestaId"])
}

func TestNotificarNuevaPropuesta_Inexistente(t *testing.T) {
	_, _, svc := seedMercado(t)

	_, err := svc.NotificarNuevaPropuesta(context.Background(), "P9")
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestNotificarAceptacion_UnAvisoPorPrestamista(t *testing.T) {
	_, notifs, svc := seedMercado(t)
	ctx := context.Background()

	ids, err := svc.NotificarAceptacion(ctx, "S1", "P1")
	require.NoError(t, err)
	require.Len(t, ids, 2)

	ganador, _ := notifs.ListByRecipient(ctx, "L1")
	require.Len(t, ganador, 1)
	assert.Equal(t, model.NotifLoanAccepted, ganador[0].Type)

	otro, _ := notifs.ListByRecipient(ctx, "L2")
	require.Len(t, otro, 1)
	assert.Equal(t, model.NotifLoanAssignedOther, otro[0].Type)

	borrower, _ := notifs.ListByRecipient(ctx, "borrower1")
	assert.Empty(t, borrower)
}

func TestNotificarAceptacion_PropuestaAjena(t *testing.T) {
	sol, _, svc := seedMercado(t)
	sol.Seed(model.Solicitud{ID: "S2", UserID: "borrower2"},
		model.Propuesta{ID: "Q1", SolicitudID: "S2", LenderID: "L3"})

	_, err := svc.NotificarAceptacion(context.Background(), "S1", "Q1")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestNotificarAceptacion_SolicitudInexistente(t *testing.T) {
	_, _, svc := seedMercado(t)

	_, err := svc.NotificarAceptacion(context.Background(), "S9", "P1")
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestNotificarNuevaPropuesta_CopiaPorEmail(t *testing.T) {
	mail := &fakeDispatcher{}
	m := newMercado(t, mail)
	ctx := context.Background()
	require.NoError(t, m.cuentas.Upsert(ctx, &model.Cuenta{ID: "borrower1", Email: "ana@correo.mx"}))

	id, err := m.svc.NotificarNuevaPropuesta(ctx, "P1")
	require.NoError(t, err)

	require.Len(t, mail.jobs, 1)
	assert.Equal(t, "ana@correo.mx", mail.jobs[0].ToEmail)
	assert.Equal(t, "Nueva propuesta", mail.jobs[0].Subject)
	assert.Equal(t, id, mail.jobs[0].NotificationID)
}

func TestNotificarAceptacion_CopiaSoloAQuienTieneEmail(t *testing.T) {
	mail := &fakeDispatcher{}
	m := newMercado(t, mail)
	ctx := context.Background()
	require.NoError(t, m.cuentas.Upsert(ctx, &model.Cuenta{ID: "L1", Email: "norte@banco.mx"}))

	ids, err := m.svc.NotificarAceptacion(ctx, "S1", "P1")
	require.NoError(t, err)
	require.Len(t, ids, 2)

	require.Len(t, mail.jobs, 1)
	assert.Equal(t, "norte@banco.mx", mail.jobs[0].ToEmail)
	assert.Equal(t, ids[0], mail.jobs[0].NotificationID)
}

func TestNotificarAceptacion_FalloDelAlmacenNoDejaParciales(t *testing.T) {
	mail := &fakeDispatcher{}
	m := newMercado(t, mail)
	ctx := context.Background()
	require.NoError(t, m.cuentas.Upsert(ctx, &model.Cuenta{ID: "L1", Email: "norte@banco.mx"}))
	m.notifs.Err = errors.New("mongo caído")

	ids, err := m.svc.NotificarAceptacion(ctx, "S1", "P1")
	assert.Equal(t, apierror.KindStore, apierror.KindOf(err))
	assert.Nil(t, ids)
	assert.Empty(t, mail.jobs)

	m.notifs.Err = nil
	for _, lender := range []string{"L1", "L2"} {
		got, err := m.notifs.ListByRecipient(ctx, lender)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}
