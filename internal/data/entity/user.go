package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// StatusFromInput maps the request status string onto a Status.
// Only the exact literal "active" maps to StatusActive; any other
// value (including "Active") maps to StatusInactive.
func StatusFromInput(value string) Status {
	if value == "active" {
		return StatusActive
	}
	return StatusInactive
}

type User struct {
	ID           uuid.UUID `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	MobileNumber string    `db:"mobile_number"`
	PasswordHash string    `db:"password"`
	PhotoURL     *string   `db:"user_photo"`
	Hobbies      string    `db:"hobbies"`
	Status       Status    `db:"status"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// SetHobbies stores the tag list in its encoded form.
func (u *User) SetHobbies(tags HobbyList) error {
	encoded, err := tags.Encode()
	if err != nil {
		return err
	}
	u.Hobbies = encoded
	return nil
}

// HobbyTags decodes the stored hobbies blob back into an ordered tag list.
func (u *User) HobbyTags() (HobbyList, error) {
	return DecodeHobbies(u.Hobbies)
}
