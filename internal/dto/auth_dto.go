package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegistroBancoRequest creates a bank administrator account gated by a signup token.
type RegistroBancoRequest struct {
	Token    string `json:"token"    validate:"required"`
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Empresa  string `json:"empresa"  validate:"required,min=2,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuentaResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Empresa   string `json:"empresa"`
	EmpresaID string `json:"empresa_id"`
	Tipo      string `json:"tipo"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int            `json:"expires_in"` // seconds
	User        CuentaResponse `json:"user"`
}

type RegistroBancoResponse struct {
	UserID string `json:"userId"`
}
