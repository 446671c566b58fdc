package models

// RoleAdmin is the only role the static credential login issues.
const RoleAdmin = "admin"

// Agent identifies the correspondent agent decoded from a bearer token.
// It is never stored server-side; the signed token is the only persistence.
type Agent struct {
	Username       string `json:"username"`
	Role           string `json:"role"`
	Agencia        string `json:"agencia"`
	Sucursal       string `json:"sucursal"`
	CodigoAgencia  string `json:"codigoAgencia"`
	CodigoSucursal string `json:"codigoSucursal"`
}
