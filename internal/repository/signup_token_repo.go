package repository

import (
	"context"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SignupTokenRepository interface {
	Create(ctx context.Context, t *model.SignupToken) error
	FindUnused(ctx context.Context, token string) (*model.SignupToken, error)
	// ConsumeIfUnused flips used to true only if it is still false; ErrNotFound otherwise.
	ConsumeIfUnused(ctx context.Context, token, usedBy string, company *string, at time.Time) (*model.SignupToken, error)
}

type signupTokenRepo struct{ coll *mongo.Collection }

func NewSignupTokenRepository(db *mongo.Database) SignupTokenRepository {
	return &signupTokenRepo{coll: db.Collection(infra.CollSignupTokens)}
}

func (r *signupTokenRepo) Create(ctx context.Context, t *model.SignupToken) error {
	_, err := r.coll.InsertOne(ctx, t)
	return translate(err)
}

func (r *signupTokenRepo) FindUnused(ctx context.Context, token string) (*model.SignupToken, error) {
	var t model.SignupToken
	err := r.coll.FindOne(ctx, bson.M{"token": token, "used": false}).Decode(&t)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *signupTokenRepo) ConsumeIfUnused(ctx context.Context, token, usedBy string, company *string, at time.Time) (*model.SignupToken, error) {
	update := bson.M{"$set": bson.M{
		"used":          true,
		"usedBy":        usedBy,
		"usedByCompany": company,
		"usedAt":        at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t model.SignupToken
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"token": token, "used": false}, update, opts).Decode(&t)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}
