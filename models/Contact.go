package models

import "gorm.io/gorm"

// Contact is the durable fact that a user reached out about a room. It gates
// review eligibility. One row per (room, user); inserts go through
// ON CONFLICT DO NOTHING so repeated dispatches stay idempotent.
type Contact struct {
	gorm.Model
	RoomID uint `json:"roomID" gorm:"not null;uniqueIndex:idx_contacts_room_user;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID uint `json:"userID" gorm:"not null;uniqueIndex:idx_contacts_room_user;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
