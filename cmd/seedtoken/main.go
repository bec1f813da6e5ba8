// cmd/seedtoken/main.go — Crea un token de registro para bancos.
// Uso: go run ./cmd/seedtoken -desc "Banco Norte" [-token ABC123]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/config"
	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	token := flag.String("token", "", "valor del token (aleatorio si se omite)")
	desc := flag.String("desc", "", "descripción mostrada al validar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mdb, err := infra.NewMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = mdb.Client().Disconnect(context.Background()) }()

	t := newToken(*token, *desc, time.Now().UTC())
	if err := repository.NewSignupTokenRepository(mdb).Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Fatal().Str("token", t.Token).Msg("el token ya existe")
		}
		log.Fatal().Err(err).Msg("insert error")
	}
	fmt.Printf("✅ Token '%s' creado (%s)\n", t.Token, t.ID)
}

// newToken builds an unused token; a blank value gets a random one.
func newToken(value, desc string, now time.Time) *model.SignupToken {
	value = strings.TrimSpace(value)
	if value == "" {
		value = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	}
	return &model.SignupToken{
		ID:          uuid.NewString(),
		Token:       value,
		Used:        false,
		Description: desc,
		CreatedAt:   now,
	}
}
