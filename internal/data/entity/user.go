package entity

import "time"

type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleShopkeeper UserRole = "shopkeeper"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether the role belongs to the closed set
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	}
	return false
}

type Address struct {
	Street   string `json:"street,omitempty"`
	Area     string `json:"area,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
}

const (
	DefaultCity         = "Karachi"
	DefaultDistrict     = "Defence"
	DefaultProfileImage = "default-avatar.png"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        *string  `db:"email"`
	Phone        string   `db:"phone"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`

	ProfileImage string  `db:"profile_image"`
	Address      Address `db:"address"`

	// [longitude, latitude], for nearby-shop queries
	Longitude float64 `db:"longitude"`
	Latitude  float64 `db:"latitude"`

	LoyaltyPoints  int `db:"loyalty_points"`
	TotalReferrals int `db:"total_referrals"`

	IsVerified bool `db:"is_verified"`
	IsActive   bool `db:"is_active"`

	FCMToken  *string    `db:"fcm_token"`
	LastLogin *time.Time `db:"last_login"`
}
