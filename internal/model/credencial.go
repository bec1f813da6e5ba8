package model

import "time"

// Credencial is an identity provider account. The password is stored only as
// a bcrypt hash.
type Credencial struct {
	ID            string `gorm:"type:varchar(64);primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	DisplayName   string `gorm:"not null"`
	PasswordHash  string `gorm:"not null"`
	Disabled      bool   `gorm:"not null;default:false"`
	EmailVerified bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralisation for Spanish names.
func (Credencial) TableName() string { return "credenciales" }
