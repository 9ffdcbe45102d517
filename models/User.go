package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email" gorm:"uniqueIndex"`
	Password  string  `json:"-"`
	Profile   Profile `json:"profile" gorm:"foreignKey:UserID"`
	Rooms     []Room  `json:"rooms,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
