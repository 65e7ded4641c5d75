package domain

// Roles determine which endpoint groups a token can reach.
const (
	RoleWorker   = "worker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == RoleWorker || s == RoleEmployer || s == RoleAdmin
}
