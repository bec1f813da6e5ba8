package dto

type CrearSubcuentaRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// UserID is the owning b_admin account.
	UserID string `json:"userId" validate:"required"`
}

type EliminarSubcuentaRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubcuentaResponse struct {
	UserID string `json:"userId"`
}
