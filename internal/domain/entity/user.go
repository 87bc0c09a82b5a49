package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"     // acceso completo, incluida la alerta manual
	RoleComprador = "comprador" // registra compras a proveedor
	RoleBodeguero = "bodeguero" // correcciones manuales de stock
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, comprador, bodeguero
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
