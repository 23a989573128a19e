package domain

import (
	"strings"
	"time"
)

// ContactSubmission is write-once; there is no further lifecycle after
// the insert.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *ContactRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return validationf("please fill in all required fields")
	}
	if !IsValidEmail(r.Email) {
		return validationf("please enter a valid email address")
	}
	return nil
}
