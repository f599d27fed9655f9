package entities

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Actor is the authenticated caller of a classroom operation.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAuthor reports whether the role may create assignments and grade work.
func (r Role) CanAuthor() bool {
	return r == RoleTeacher || r == RoleAdmin
}
