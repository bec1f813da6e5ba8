package repository

import (
	"context"

	"github.com/robertopeiro12/buscocredito-sub002/internal/model"

	"gorm.io/gorm"
)

// CredencialRepository is the identity provider: it issues, looks up and
// revokes user credentials.
type CredencialRepository interface {
	Create(ctx context.Context, c *model.Credencial) error
	FindByEmail(ctx context.Context, email string) (*model.Credencial, error)
	Delete(ctx context.Context, id string) error
}

type credencialRepo struct{ db *gorm.DB }

func NewCredencialRepository(db *gorm.DB) CredencialRepository { return &credencialRepo{db: db} }

func (r *credencialRepo) Create(ctx context.Context, c *model.Credencial) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *credencialRepo) FindByEmail(ctx context.Context, email string) (*model.Credencial, error) {
	var c model.Credencial
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *credencialRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Credencial{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
