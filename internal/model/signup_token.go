package model

import "time"

// SignupToken is a one-time invitation that gates bank registration
// (`bank_signup_tokens` collection). Used never reverts to false.
type SignupToken struct {
	ID            string     `bson:"_id"           json:"id"`
	Token         string     `bson:"token"         json:"token"`
	Used          bool       `bson:"used"          json:"used"`
	UsedBy        *string    `bson:"usedBy"        json:"usedBy"`
	UsedByCompany *string    `bson:"usedByCompany" json:"usedByCompany"`
	UsedAt        *time.Time `bson:"usedAt"        json:"usedAt"`
	Description   string     `bson:"description"   json:"description"`
	CreatedAt     time.Time  `bson:"createdAt"     json:"createdAt"`
}
