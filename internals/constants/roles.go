package constants

import "fmt"

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "only teachers or admins can access %s"
	ErrOnlyAdminsCanAccess   = "only admins can access %s"
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// roleHierarchy: role -> role yang tercakup olehnya
var roleHierarchy = map[string][]string{
	RoleAdmin:   {RoleAdmin, RoleTeacher, RoleStudent},
	RoleTeacher: {RoleTeacher, RoleStudent},
	RoleStudent: {RoleStudent},
}

// HasPermission true kalau userRole mencakup requiredRole.
func HasPermission(userRole, requiredRole string) bool {
	for _, r := range roleHierarchy[userRole] {
		if r == requiredRole {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	_, ok := roleHierarchy[role]
	return ok
}
