package domain

const (
	RoleSales     = "sales"
	RoleAdmin     = "admin"
	RoleLogistics = "logistics"
)

// DefaultRole is assigned on registration when none is given.
const DefaultRole = RoleSales

// User is the authenticated actor as reported by GET /api/auth/me.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// Registration carries the fields sent to POST /api/auth/register.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
