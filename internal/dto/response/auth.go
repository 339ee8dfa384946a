package response

import (
	"electrifind/internal/data/entity"
)

// AuthUser is the user payload returned alongside a token by register
// and login. isVerified is only present on login.
type AuthUser struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email"`
	Role          entity.UserRole `json:"role"`
	LoyaltyPoints int             `json:"loyaltyPoints"`
	IsVerified    *bool           `json:"isVerified,omitempty"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

func NewAuthUser(user *entity.User, withVerified bool) AuthUser {
	resp := AuthUser{
		ID:            user.ID.String(),
		Name:          user.Name,
		Phone:         user.Phone,
		Email:         user.Email,
		Role:          user.Role,
		LoyaltyPoints: user.LoyaltyPoints,
	}

	if withVerified {
		verified := user.IsVerified
		resp.IsVerified = &verified
	}

	return resp
}
