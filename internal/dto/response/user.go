package response

import (
	"time"

	"user-panel/internal/data/entity"
)

// UserResponse is the public shape of a user record. The password hash
// is deliberately absent; it must never be serialized.
type UserResponse struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Email        string           `json:"email"`
	MobileNumber string           `json:"mobile_number,omitempty"`
	PhotoURL     *string          `json:"user_photo,omitempty"`
	Hobbies      entity.HobbyList `json:"hobbies"`
	Status       entity.Status    `json:"status"`
	Role         entity.Role      `json:"role"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	hobbies, err := user.HobbyTags()
	if err != nil {
		hobbies = entity.HobbyList{}
	}

	return UserResponse{
		ID:           user.ID.String(),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		PhotoURL:     user.PhotoURL,
		Hobbies:      hobbies,
		Status:       user.Status,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = UserToResponse(user)
	}
	return out
}
