package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository/memory"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedToken(t *testing.T, repo *memory.SignupTokenRepo, value string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.SignupToken{
		ID:          "tok-" + value,
		Token:       value,
		Description: "Banco Norte",
		CreatedAt:   time.Now(),
	}))
}

func TestToken_Escenario(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	seedToken(t, repo, "ABC123")
	svc := service.NewTokenService(repo)
	ctx := context.Background()

	res, err := svc.Validar(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "tok-ABC123", res.TokenID)
	assert.Equal(t, "Banco Norte", res.Description)

	require.NoError(t, svc.Consumir(ctx, "ABC123", "U1", nil))

	res, err = svc.Validar(ctx, "ABC123")
	require.NoError(t, err)
	assert.False(t, res.Valid)

	doc, _ := repo.Get("ABC123")
	assert.True(t, doc.Used)
	require.NotNil(t, doc.UsedBy)
	assert.Equal(t, "U1", *doc.UsedBy)
	assert.Nil(t, doc.UsedByCompany)
	assert.NotNil(t, doc.UsedAt)
}

func TestValidar_Desconocido(t *testing.T) {
	svc := service.NewTokenService(memory.NewSignupTokenRepo())

	res, err := svc.Validar(context.Background(), "NOPE")
	assert.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestValidar_Vacio(t *testing.T) {
	svc := service.NewTokenService(memory.NewSignupTokenRepo())

	_, err := svc.Validar(context.Background(), "")
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestValidar_ErrorDeStore(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	repo.Err = errors.New("timeout")
	svc := service.NewTokenService(repo)

	_, err := svc.Validar(context.Background(), "ABC123")
	assert.Equal(t, apierror.KindStore, apierror.KindOf(err))
}

func TestConsumir_YaUsado(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	seedToken(t, repo, "ABC123")
	svc := service.NewTokenService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Consumir(ctx, "ABC123", "U1", nil))
	err := svc.Consumir(ctx, "ABC123", "U2", nil)
	assert.Equal(t, apierror.KindTokenInvalid, apierror.KindOf(err))
	assert.Equal(t, 400, apierror.StatusOf(err))

	doc, _ := repo.Get("ABC123")
	assert.Equal(t, "U1", *doc.UsedBy)
}

func TestConsumir_Desconocido(t *testing.T) {
	svc := service.NewTokenService(memory.NewSignupTokenRepo())

	err := svc.Consumir(context.Background(), "NOPE", "U1", nil)
	assert.Equal(t, apierror.KindTokenInvalid, apierror.KindOf(err))
}

func TestConsumir_GuardaEmpresa(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	seedToken(t, repo, "ABC123")
	seedToken(t, repo, "XYZ789")
	svc := service.NewTokenService(repo)
	ctx := context.Background()

	empresa := "Banco Norte SA"
	require.NoError(t, svc.Consumir(ctx, "ABC123", "U1", &empresa))
	doc, _ := repo.Get("ABC123")
	require.NotNil(t, doc.UsedByCompany)
	assert.Equal(t, empresa, *doc.UsedByCompany)

	blank := "  "
	require.NoError(t, svc.Consumir(ctx, "XYZ789", "U2", &blank))
	doc, _ = repo.Get("XYZ789")
	assert.Nil(t, doc.UsedByCompany)
}

func TestConsumir_RecortaUsuario(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	seedToken(t, repo, "ABC123")
	svc := service.NewTokenService(repo)

	require.NoError(t, svc.Consumir(context.Background(), " ABC123 ", " U1 ", nil))
	doc, _ := repo.Get("ABC123")
	require.NotNil(t, doc.UsedBy)
	assert.Equal(t, "U1", *doc.UsedBy)
}

// Two concurrent redemptions of one token: exactly one wins.
func TestConsumir_Concurrente(t *testing.T) {
	repo := memory.NewSignupTokenRepo()
	seedToken(t, repo, "RACE")
	svc := service.NewTokenService(repo)

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losers  int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			<-start
			err := svc.Consumir(context.Background(), "RACE", user, nil)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, user)
				return
			}
			if apierror.KindOf(err) == apierror.KindTokenInvalid {
				losers++
			}
		}(string(rune('A' + i)))
	}
	close(start)
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, n-1, losers)

	doc, _ := repo.Get("RACE")
	assert.True(t, doc.Used)
	assert.Equal(t, winners[0], *doc.UsedBy)
}
