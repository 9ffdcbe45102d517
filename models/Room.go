package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoomTypeSingle = "single"
	RoomTypeShared = "shared"
	RoomTypeFlat   = "flat"
)

// RoomTypeLabels maps the stored room type to its display label, used by the
// free-text search which also matches against labels.
var RoomTypeLabels = map[string]string{
	RoomTypeSingle: "Single Room",
	RoomTypeShared: "Shared Room",
	RoomTypeFlat:   "Flat / Apartment",
}

type Room struct {
	gorm.Model
	OwnerID     *uint   `json:"ownerID" gorm:"index"` // nullable: orphaned rooms stay listable
	Title       string  `json:"title"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	RoomType    string  `json:"roomType" gorm:"type:varchar(20);index"` // single, shared, flat

	ContactPhone    string `json:"contactPhone"`
	ContactWhatsApp string `json:"contactWhatsApp"`
	ContactEmail    string `json:"contactEmail"`

	IsAvailable *bool          `json:"isAvailable" gorm:"default:true;index"`
	Amenities   datatypes.JSON `json:"amenities"`

	Images  []RoomImage `json:"images" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
	Reviews []Review    `json:"reviews,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
	Owner   *User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (r *Room) Available() bool {
	return r.IsAvailable == nil || *r.IsAvailable
}

// Custom JSON marshaling so Amenities always renders as an array.
func (r *Room) MarshalJSON() ([]byte, error) {
	type Alias Room
	aux := &struct {
		Amenities []string `json:"amenities"`
		Owner     *User    `json:"owner,omitempty"`
		*Alias
	}{
		Amenities: []string{},
		Alias:     (*Alias)(r),
	}

	if r.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(r.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	// Avoid circular reference through Owner.Rooms
	if r.Owner != nil && r.Owner.ID > 0 {
		ownerCopy := *r.Owner
		ownerCopy.Rooms = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}

func ValidRoomType(roomType string) bool {
	_, ok := RoomTypeLabels[roomType]
	return ok
}
