package models

type Role string

const (
	RoleStandardUser   Role = "standard_user"
	RoleEventOrganizer Role = "event_organizer"
	RoleAdmin          Role = "admin"
)

// Caller is the already-authenticated identity a request acts on behalf of.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (r Role) Valid() bool {
	switch r {
	case RoleStandardUser, RoleEventOrganizer, RoleAdmin:
		return true
	}
	return false
}
