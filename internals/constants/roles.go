package constants

import "fmt"

// Role akun (kolom users.role, klaim "role" di JWT)
const (
	RoleTenant   = "TENANT"
	RoleAdmin    = "ADMIN"
	RoleLecturer = "LECTURER"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyTenantsCanAccess   = "❌ Hanya tenant yang boleh mengakses fitur %s."
	ErrOnlyLecturersCanAccess = "❌ Hanya dosen pembina yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTenant(feature string) string {
	return fmt.Sprintf(ErrOnlyTenantsCanAccess, feature)
}

func RoleErrorLecturer(feature string) string {
	return fmt.Sprintf(ErrOnlyLecturersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleTenant,
		RoleAdmin,
		RoleLecturer,
	}

	// Role yang boleh dibuat admin lewat /api/admin/users
	ProvisionableRoles = []string{
		RoleTenant,
		RoleLecturer,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	TenantOnly = []string{
		RoleTenant,
	}

	LecturerOnly = []string{
		RoleLecturer,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
