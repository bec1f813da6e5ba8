package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Solicitud is a borrower's loan request (`solicitudes`). Read-only here.
type Solicitud struct {
	ID        string               `bson:"_id"       json:"id"`
	UserID    string               `bson:"userId"    json:"userId"`
	Proposito string               `bson:"purpose"   json:"purpose"`
	Monto     primitive.Decimal128 `bson:"amount"    json:"-"`
	Plazo     int                  `bson:"term"      json:"term"`
	Estado    string               `bson:"status"    json:"status"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// Propuesta is a lender's offer on a Solicitud (`propuestas`). Read-only here.
type Propuesta struct {
	ID          string               `bson:"_id"          json:"id"`
	SolicitudID string               `bson:"solicitudId"  json:"solicitudId"`
	LenderID    string               `bson:"lenderId"     json:"lenderId"`
	Empresa     string               `bson:"empresa"      json:"empresa"`
	Monto       primitive.Decimal128 `bson:"amount"       json:"-"`
	Tasa        primitive.Decimal128 `bson:"interestRate" json:"-"`
	Plazo       int                  `bson:"term"         json:"term"`
	Comision    primitive.Decimal128 `bson:"comision"     json:"-"`
	Estado      string               `bson:"status"       json:"status"`
	CreatedAt   time.Time            `bson:"createdAt"    json:"createdAt"`
}
