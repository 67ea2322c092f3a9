package model

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleClerk   Role = "CLERK"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleTeacher: {
		PermissionStudentsRead,
		PermissionStudentsWrite,
		PermissionReportsRead,
	},
	RoleClerk: {
		PermissionStudentsRead,
		PermissionStudentsWrite,
		PermissionStudentsImport,
		PermissionReportsRead,
	},
}

// Permissions returns the permission codes granted to the role.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	codes := make([]string, 0, len(perms))
	for _, p := range perms {
		codes = append(codes, string(p))
	}
	return codes
}
