package model

// Tipos de cuenta de banco.
const (
	TipoBancoAdmin = "b_admin"
	TipoBancoVenta = "b_sale"
)

// Cuenta is the profile document of a user (`cuentas` collection).
// Its ID is always the identity credential's ID.
type Cuenta struct {
	ID        string `bson:"_id"        json:"id"`
	Nombre    string `bson:"Nombre"     json:"Nombre"`
	Empresa   string `bson:"Empresa"    json:"Empresa"`
	EmpresaID string `bson:"Empresa_id" json:"Empresa_id"`
	Tipo      string `bson:"type"       json:"type"`
	Email     string `bson:"email"      json:"email"`
}
