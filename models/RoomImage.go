package models

import "gorm.io/gorm"

type RoomImage struct {
	gorm.Model
	RoomID uint   `json:"roomID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	URL    string `json:"url" gorm:"type:text;not null"`
}
