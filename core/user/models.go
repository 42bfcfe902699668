package user

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

// Roles
const (
	// Staff
	RoleStaff      = "staff:"
	RoleStaffAdmin = "staff:admin"

	// Student
	RoleStudent = "student:"
)

// Role names exposed to clients (sign up / sign in / session).
const (
	StaffRoleName   = "staff"
	StudentRoleName = "student"
)

var (
	StaffRoles   = []string{RoleStaff, RoleStaffAdmin}
	StudentRoles = []string{RoleStudent}
)

// RolesFromName maps a client role name ("student" | "staff") to the roles granted on sign up.
func RolesFromName(name string) ([]string, bool) {
	switch core.CleanString(name, true /* lower */) {
	case StudentRoleName:
		return []string{RoleStudent}, true
	case StaffRoleName:
		return []string{RoleStaff}, true
	}
	return nil, false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsStaff() bool {
	return u.RoleStartsWith(RoleStaff)
}

func (u *User) IsStudent() bool {
	return u.RoleStartsWith(RoleStudent)
}

// RoleName is the client-facing role of the user. Staff wins over student.
func (u *User) RoleName() string {
	if u.IsStaff() {
		return StaffRoleName
	}
	if u.IsStudent() {
		return StudentRoleName
	}
	return ""
}

// HasRoleName reports whether the user holds the client role `name`.
func (u *User) HasRoleName(name string) bool {
	switch name {
	case StaffRoleName:
		return u.IsStaff()
	case StudentRoleName:
		return u.IsStudent()
	}
	return false
}

// Session is the current-session view handed to clients.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u *User) Session() Session {
	return Session{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.RoleName()}
}

// NewUser contains information needed to sign up a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=student staff"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, nu.Email)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp *ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type GetFilter struct {
	ID    string
	Email string
}
