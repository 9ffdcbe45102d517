package models

import "gorm.io/gorm"

// Review requires a prior Contact for the same (user, room) pair. There is
// deliberately no uniqueness constraint: a user may review a room more than
// once.
type Review struct {
	gorm.Model
	RoomID  uint   `json:"roomID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID  uint   `json:"userID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"type:text"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
}
