package domain

// Role identifies the kind of account a session token was issued for.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
	RoleSupplier Role = "Supplier"
)

// AllRoles is the closed set of roles the login flow can issue tokens for.
// Token cookies are keyed by role name, so the order here is also the read order.
var AllRoles = []Role{RoleAdmin, RoleCustomer, RoleManager, RoleEmployee, RoleSupplier}

// TokenCookie returns the cookie name the external login flow stores this
// role's token under (e.g. "CustomerToken").
func (r Role) TokenCookie() string {
	return string(r) + "Token"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}
