package repository

import (
	"context"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CuentaRepository interface {
	// Upsert writes the profile keyed by its ID, so repeating it converges.
	Upsert(ctx context.Context, c *model.Cuenta) error
	FindByID(ctx context.Context, id string) (*model.Cuenta, error)
	Delete(ctx context.Context, id string) error
}

type cuentaRepo struct{ coll *mongo.Collection }

func NewCuentaRepository(db *mongo.Database) CuentaRepository {
	return &cuentaRepo{coll: db.Collection(infra.CollCuentas)}
}

func (r *cuentaRepo) Upsert(ctx context.Context, c *model.Cuenta) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return translate(err)
}

func (r *cuentaRepo) FindByID(ctx context.Context, id string) (*model.Cuenta, error) {
	var c model.Cuenta
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *cuentaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
