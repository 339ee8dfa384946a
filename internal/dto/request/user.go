package request

// UpdateProfileRequest carries the allow-listed profile fields.
// Absent fields are left untouched (partial update).
type UpdateProfileRequest struct {
	Name         *string         `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Email        *string         `json:"email,omitempty" validate:"omitempty,email"`
	ProfileImage *string         `json:"profileImage,omitempty"`
	Address      *AddressRequest `json:"address,omitempty"`
}

type AddressRequest struct {
	Street   string `json:"street"`
	Area     string `json:"area"`
	City     string `json:"city"`
	District string `json:"district"`
}
