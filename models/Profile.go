package models

import "gorm.io/gorm"

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
)

// Profile carries the role attached to every account. It is created in the
// same transaction as its User, never lazily.
type Profile struct {
	gorm.Model
	UserID     uint   `json:"userID" gorm:"not null;uniqueIndex;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role       string `json:"role" gorm:"type:varchar(20);default:'tenant';index"` // tenant, landlord
	IsVerified bool   `json:"isVerified" gorm:"default:false"`
}

func ValidRole(role string) bool {
	return role == RoleTenant || role == RoleLandlord
}
