package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionStudentsRead allows listing, searching, viewing and exporting students.
	PermissionStudentsRead Permission = "students:read"

	// PermissionStudentsWrite allows creating, updating and deleting students.
	PermissionStudentsWrite Permission = "students:write"

	// PermissionStudentsImport allows bulk importing students from a file.
	PermissionStudentsImport Permission = "students:import"

	// PermissionReportsRead allows viewing dashboard statistics and reports.
	PermissionReportsRead Permission = "reports:read"

	// PermissionUsersRead allows viewing user accounts.
	PermissionUsersRead Permission = "users:read"

	// PermissionUsersWrite allows creating, updating and deleting user accounts.
	PermissionUsersWrite Permission = "users:write"

	// PermissionSystemRead allows viewing process and host metrics.
	PermissionSystemRead Permission = "system:read"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionStudentsRead,
	PermissionStudentsWrite,
	PermissionStudentsImport,
	PermissionReportsRead,
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionSystemRead,
}

// AllPermissionCodes returns every permission code as a string.
func AllPermissionCodes() []string {
	codes := make([]string, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		codes = append(codes, string(p))
	}
	return codes
}
