package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed document or credential does not exist.
	ErrNotFound = errors.New("registro no encontrado")
	// ErrDuplicate is returned when a unique key (token value, e-mail) is already taken.
	ErrDuplicate = errors.New("registro duplicado")
)

// translate normalises driver errors so services never import a driver.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
