package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ValidarTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type ConsumirTokenRequest struct {
	Token       string  `json:"token"       validate:"required"`
	UsedBy      string  `json:"usedBy"      validate:"required"`
	CompanyName *string `json:"companyName"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ValidarTokenResponse reports whether a token can still be redeemed. An
// unknown or used token is a normal outcome (Valid=false), not an error.
type ValidarTokenResponse struct {
	Valid       bool   `json:"valid"`
	TokenID     string `json:"tokenId,omitempty"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

type ConsumirTokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
