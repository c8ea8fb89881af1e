package constants

import "fmt"

const (
	RoleAdmin        = "admin"
	RoleTeacher      = "teacher"
	RoleStudent      = "student"
	RoleParent       = "parent"
	RoleAccountant   = "accountant"
	RoleLibrarian    = "librarian"
	RoleReceptionist = "receptionist"
)

const ErrRoleForbidden = "Only %s can access %s"

func RoleError(feature string, roles []string) string {
	return fmt.Sprintf(ErrRoleForbidden, joinRoles(roles), feature)
}

func joinRoles(roles []string) string {
	switch len(roles) {
	case 0:
		return "authorized users"
	case 1:
		return roles[0]
	}
	out := ""
	for i, r := range roles {
		switch {
		case i == 0:
			out = r
		case i == len(roles)-1:
			out += " or " + r
		default:
			out += ", " + r
		}
	}
	return out
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin, RoleTeacher, RoleStudent, RoleParent,
		RoleAccountant, RoleLibrarian, RoleReceptionist,
	}
	StaffRoles = []string{
		RoleAdmin, RoleTeacher, RoleAccountant, RoleLibrarian, RoleReceptionist,
	}
	AdminOnly         = []string{RoleAdmin}
	AdminTeacher      = []string{RoleAdmin, RoleTeacher}
	AdminAccountant   = []string{RoleAdmin, RoleAccountant}
	AdminLibrarian    = []string{RoleAdmin, RoleLibrarian}
	AdminReceptionist = []string{RoleAdmin, RoleReceptionist}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
