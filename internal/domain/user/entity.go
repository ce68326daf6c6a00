// internal/domain/user/entity.go
package user

import "time"

const (
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FullName joins first and last name the way the dashboards display it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAgent() bool {
	return a.Role == RoleAgent
}
