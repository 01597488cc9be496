package access

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleStaff  Role = "staff"
	RoleTenant Role = "tenant"
	RoleGuest  Role = "guest"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleStaff, RoleTenant, RoleGuest:
		return true
	}
	return false
}

// Principal is the authenticated actor behind a request. Credential
// verification happens outside this backend; handlers only ever see the
// resolved principal.
type Principal struct {
	ID       string
	Role     Role
	Username string
}
