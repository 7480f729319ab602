package account

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Admins see every patient's alerts; physicians and nurses see
// the patients they work with.
const (
	RoleAdmin     = "admin"
	RolePhysician = "physician"
	RoleNurse     = "nurse"
)

// User maps to the account_user table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Age          int       `db:"age" json:"age"`
	Gender       *string   `db:"gender" json:"gender,omitempty"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Age             int     `json:"age"`
	Gender          *string `json:"gender,omitempty"`
	Role            string  `json:"role"`
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
