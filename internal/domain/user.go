package domain

// UserRole определяет роль пользователя для авторизации.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// User holds credentials and authorization state. Password,
// RefreshToken and ResetToken are bcrypt hashes and never serialized.
type User struct {
	ID       int64      `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	Lastname string     `json:"lastname" db:"lastname"`
	Username string     `json:"username" db:"username"`
	Password string     `json:"-" db:"password"`
	Email    string     `json:"email" db:"email"`
	Roles    []UserRole `json:"roles" db:"roles"`

	// RefreshToken is the hash of the single active session refresh
	// token; nil when logged out.
	RefreshToken *string `json:"-" db:"refresh_token"`

	// ResetToken is the hash backing the password-reset flow. Kept
	// separate from RefreshToken so a reset cannot hijack a session.
	ResetToken *string `json:"-" db:"reset_token"`

	TypeID *int64 `json:"typeId,omitempty" db:"type_id"`
}

// RoleStrings converts the roles array for embedding into JWT claims.
func (u *User) RoleStrings() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, string(r))
	}
	return out
}
