package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=50"`
	Phone    string  `json:"phone" validate:"required,pkphone"`
	Password string  `json:"password" validate:"required,min=8,strongpwd"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=customer shopkeeper admin"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,pkphone"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,strongpwd"`
}
