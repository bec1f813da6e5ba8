package repository

import (
	"context"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	// CreateMany stores the batch all-or-nothing.
	CreateMany(ctx context.Context, batch []*model.Notificacion) error
	ListByRecipient(ctx context.Context, recipientID string) ([]model.Notificacion, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead returns ErrNotFound when id matches no document.
	MarkRead(ctx context.Context, id string) error
	// DeleteAllByRecipient removes every notification of the recipient atomically.
	DeleteAllByRecipient(ctx context.Context, recipientID string) (int64, error)
}

type notificacionRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewNotificacionRepository(db *mongo.Database) NotificacionRepository {
	return &notificacionRepo{client: db.Client(), coll: db.Collection(infra.CollNotificaciones)}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	_, err := r.coll.InsertOne(ctx, n)
	return translate(err)
}

func (r *notificacionRepo) CreateMany(ctx context.Context, batch []*model.Notificacion) error {
	if len(batch) == 0 {
		return nil
	}
	docs := make([]interface{}, len(batch))
	for i, n := range batch {
		docs[i] = n
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.coll.InsertMany(sc, docs)
	})
	return translate(err)
}

func (r *notificacionRepo) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notificacion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"recipientId": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	list := make([]model.Notificacion, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificacionRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"recipientId": recipientID, "read": false})
}

func (r *notificacionRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificacionRepo) DeleteAllByRecipient(ctx context.Context, recipientID string) (int64, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return 0, err
	}
	defer sess.EndSession(ctx)

	deleted, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.DeleteMany(sc, bson.M{"recipientId": recipientID})
		if err != nil {
			return nil, err
		}
		return res.DeletedCount, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted.(int64), nil
}
