package domain

import (
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

// UserInfo is the identity shape exposed to clients: everything the UI
// needs to populate display-name/email placeholders, nothing sensitive.
type UserInfo struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Valid user roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// signUpRoles are the roles an account may claim at registration.
// Admin accounts are never self-service; they are seeded out of band.
var signUpRoles = map[string]bool{
	RoleStudent:    true,
	RoleInstructor: true,
}

func (r *SignUpRequest) Validate() error {
	if r.Email == "" {
		return validationf("email is required")
	}
	if !IsValidEmail(r.Email) {
		return validationf("invalid email format")
	}
	if r.Password == "" {
		return validationf("password is required")
	}
	if len(r.Password) < 8 {
		return validationf("password must be at least 8 characters")
	}
	if r.FullName == "" {
		return validationf("full name is required")
	}
	if r.Role != "" && !signUpRoles[r.Role] {
		return validationf("invalid role")
	}
	return nil
}

func (r *SignUpRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = RoleStudent
	}
}

func (r *SignInRequest) Validate() error {
	if r.Email == "" {
		return validationf("email is required")
	}
	if !IsValidEmail(r.Email) {
		return validationf("invalid email format")
	}
	if r.Password == "" {
		return validationf("password is required")
	}
	return nil
}

func (r *SignInRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *PasswordResetConfirm) Validate() error {
	if r.Token == "" {
		return validationf("token is required")
	}
	if len(r.NewPassword) < 8 {
		return validationf("password must be at least 8 characters")
	}
	return nil
}

// IsValidEmail checks the syntactic shape only: a local part, an @, and
// a domain containing at least one dot. No MX or deliverability checks.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ToUserInfo converts User to UserInfo (without sensitive data)
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}
