package request

// UserInput is the sparse payload for user create and update requests.
// Every scalar field is a pointer: nil means the field was absent from
// the request, which is distinct from present-but-empty. Only present
// fields are ever written onto an existing record.
type UserInput struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Email           *string  `json:"email"`
	MobileNumber    *string  `json:"mobile_number"`
	Password        *string  `json:"password"`
	ConfirmPassword *string  `json:"c_password"`
	Status          *string  `json:"status"`
	Hobbies         []string `json:"hobbies"`
}

// HasHobbies reports whether the request carried a non-empty hobbies list.
// A nil slice means the field was absent; an empty list is treated the
// same and leaves the stored hobbies untouched.
func (in *UserInput) HasHobbies() bool {
	return len(in.Hobbies) > 0
}
