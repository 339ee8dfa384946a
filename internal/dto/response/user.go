package response

import (
	"time"

	"electrifind/internal/data/entity"
)

// UserResponse is the full safe view of a user record. The password hash
// is never part of any response.
type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          *string         `json:"email"`
	Role           entity.UserRole `json:"role"`
	ProfileImage   string          `json:"profileImage"`
	Address        entity.Address  `json:"address"`
	Location       [2]float64      `json:"location"` // [longitude, latitude]
	LoyaltyPoints  int             `json:"loyaltyPoints"`
	TotalReferrals int             `json:"totalReferrals"`
	IsVerified     bool            `json:"isVerified"`
	IsActive       bool            `json:"isActive"`
	LastLogin      *time.Time      `json:"lastLogin,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Phone:          user.Phone,
		Email:          user.Email,
		Role:           user.Role,
		ProfileImage:   user.ProfileImage,
		Address:        user.Address,
		Location:       [2]float64{user.Longitude, user.Latitude},
		LoyaltyPoints:  user.LoyaltyPoints,
		TotalReferrals: user.TotalReferrals,
		IsVerified:     user.IsVerified,
		IsActive:       user.IsActive,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
