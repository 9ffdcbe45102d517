package models

import "gorm.io/gorm"

const (
	StatView            = "view"
	StatContactPhone    = "contact_phone"
	StatContactWhatsApp = "contact_whatsapp"
	StatContactEmail    = "contact_email"
	StatSuccess         = "success"
)

// ContactStatPrefix matches every contact_* stat type.
const ContactStatPrefix = "contact"

// RoomStat is an append-only analytics event. UserID is null for anonymous
// viewers. Rows are never updated or deleted by application logic.
type RoomStat struct {
	gorm.Model
	RoomID   uint   `json:"roomID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID   *uint  `json:"userID" gorm:"index"`
	StatType string `json:"statType" gorm:"type:varchar(20);not null;index"` // view, contact_phone, contact_whatsapp, contact_email, success
}
