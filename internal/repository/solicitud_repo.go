package repository

import (
	"context"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SolicitudRepository reads loan requests and the proposals made on them.
// Both collections are owned elsewhere; nothing here writes to them.
type SolicitudRepository interface {
	FindSolicitud(ctx context.Context, id string) (*model.Solicitud, error)
	FindPropuesta(ctx context.Context, id string) (*model.Propuesta, error)
	ListPropuestas(ctx context.Context, solicitudID string) ([]model.Propuesta, error)
}

type solicitudRepo struct {
	solicitudes *mongo.Collection
	propuestas  *mongo.Collection
}

func NewSolicitudRepository(db *mongo.Database) SolicitudRepository {
	return &solicitudRepo{
		solicitudes: db.Collection(infra.CollSolicitudes),
		propuestas:  db.Collection(infra.CollPropuestas),
	}
}

func (r *solicitudRepo) FindSolicitud(ctx context.Context, id string) (*model.Solicitud, error) {
	var s model.Solicitud
	if err := r.solicitudes.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *solicitudRepo) FindPropuesta(ctx context.Context, id string) (*model.Propuesta, error) {
	var p model.Propuesta
	if err := r.propuestas.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *solicitudRepo) ListPropuestas(ctx context.Context, solicitudID string) ([]model.Propuesta, error) {
	cur, err := r.propuestas.Find(ctx, bson.M{"solicitudId": solicitudID})
	if err != nil {
		return nil, err
	}
	list := make([]model.Propuesta, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
