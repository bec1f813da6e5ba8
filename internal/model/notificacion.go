package model

import "time"

// Notification types emitted by the marketplace.
const (
	NotifNuevaPropuesta    = "nueva_propuesta"
	NotifLoanAccepted      = "loan_accepted"
	NotifLoanAssignedOther = "loan_assigned_other"
	NotifTest              = "test"
)

// Notificacion is a user-facing alert stored in the `notifications` collection.
// RecipientID never changes after creation and Read only moves false → true.
type Notificacion struct {
	ID          string         `bson:"_id"         json:"id"`
	RecipientID string         `bson:"recipientId" json:"recipientId"`
	Type        string         `bson:"type"        json:"type"`
	Title       string         `bson:"title"       json:"title"`
	Message     string         `bson:"message"     json:"message"`
	Data        map[string]any `bson:"data"        json:"data"`
	Read        bool           `bson:"read"        json:"read"`
	CreatedAt   time.Time      `bson:"createdAt"   json:"createdAt"`
}
