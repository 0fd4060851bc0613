package auth

import "time"

// Roles de usuario. Los visitantes anónimos no tienen rol.
const (
	RoleAdopter   = "adopter"
	RoleVolunteer = "volunteer"
	RoleStaff     = "staff"
	RoleAdmin     = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// IsStaff: staff y admin pueden administrar animales y rescates.
func (c Claims) IsStaff() bool {
	return c.Role == RoleStaff || c.Role == RoleAdmin
}

type User struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Role    string         `json:"role"`
	Profile map[string]any `json:"profile,omitempty"`
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired con un margen para no usar un token a punto de vencer.
func (t Tokens) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(30 * time.Second).Before(t.ExpiresAt)
}

// Session es Anonymous o Authenticated; no hay otras variantes.
type Session interface {
	isSession()
}

type Anonymous struct{}

type Authenticated struct {
	User   User
	Tokens Tokens
}

func (Anonymous) isSession()     {}
func (Authenticated) isSession() {}

// UserOf devuelve el usuario si la sesión está autenticada.
func UserOf(s Session) (User, bool) {
	a, ok := s.(Authenticated)
	if !ok {
		return User{}, false
	}
	return a.User, true
}

func ClaimsOf(u User) Claims {
	return Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// ResolveRole: staff y admin solo salen de app_metadata.role, que el
// usuario no puede escribir. user_metadata.user_type elige entre adopter y
// volunteer. Sin rol reconocido el usuario es adopter.
func ResolveRole(appMeta, userMeta map[string]any) string {
	if s, _ := appMeta["role"].(string); validRole(s) {
		return s
	}
	if s, _ := userMeta["user_type"].(string); selfAssignable(s) {
		return s
	}
	return RoleAdopter
}

func validRole(s string) bool {
	switch s {
	case RoleAdopter, RoleVolunteer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

func selfAssignable(s string) bool { return s == RoleAdopter || s == RoleVolunteer }

// SanitizeProfile copia el perfil de registro sin role y con user_type
// solo si es adopter o volunteer.
func SanitizeProfile(profile map[string]any) map[string]any {
	out := make(map[string]any, len(profile))
	for k, v := range profile {
		switch k {
		case "role":
			continue
		case "user_type":
			if s, _ := v.(string); !selfAssignable(s) {
				continue
			}
		}
		out[k] = v
	}
	return out
}
