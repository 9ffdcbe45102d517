package routes

import (
	"encoding/json"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomInput struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	Price           float64  `json:"price" validate:"gte=0"`
	Location        string   `json:"location" validate:"required,max=200"`
	RoomType        string   `json:"roomType" validate:"required,oneof=single shared flat"`
	ContactPhone    string   `json:"contactPhone" validate:"required,max=20"`
	ContactWhatsApp string   `json:"contactWhatsApp" validate:"max=20"`
	ContactEmail    string   `json:"contactEmail" validate:"omitempty,email"`
	IsAvailable     *bool    `json:"isAvailable"`
	Amenities       []string `json:"amenities"`
}

func CreateRoom(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	duplicate, dupErr := duplicateListingExists(userID, &input, 0)
	if dupErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if duplicate {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error",
			"You already have a listing with this title, location, type and price.", ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	room := models.Room{
		OwnerID:         &userID,
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		Location:        input.Location,
		RoomType:        input.RoomType,
		ContactPhone:    input.ContactPhone,
		ContactWhatsApp: input.ContactWhatsApp,
		ContactEmail:    input.ContactEmail,
		IsAvailable:     input.IsAvailable,
		Amenities:       datatypes.JSON(amenitiesJSON),
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		// The unique index catches the race two concurrent submissions of the
		// same tuple would otherwise win together.
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error",
			"You already have a listing with this title, location, type and price.", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&room)
}

// GetRoom is the public detail view. Unavailable and missing rooms are both
// not-found. Every hit appends a view stat; the user reference is null for
// anonymous traffic.
func GetRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var room models.Room
	roomExists := storage.DB.Preload("Images").Preload("Reviews.User").
		Where("is_available = ?", true).Find(&room, id)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	stat := models.RoomStat{RoomID: room.ID, StatType: models.StatView}
	if userID, ok := utils.CurrentUserID(ctx); ok {
		stat.UserID = &userID
	}
	storage.DB.Create(&stat)

	ctx.JSON(&room)
}

func UpdateRoom(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	room, found := ownedRoomByID(ctx, userID)
	if !found {
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	duplicate, dupErr := duplicateListingExists(userID, &input, room.ID)
	if dupErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if duplicate {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error",
			"You already have a listing with this title, location, type and price.", ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	room.Title = input.Title
	room.Description = input.Description
	room.Price = input.Price
	room.Location = input.Location
	room.RoomType = input.RoomType
	room.ContactPhone = input.ContactPhone
	room.ContactWhatsApp = input.ContactWhatsApp
	room.ContactEmail = input.ContactEmail
	room.Amenities = datatypes.JSON(amenitiesJSON)
	if input.IsAvailable != nil {
		room.IsAvailable = input.IsAvailable
	}

	if err := storage.DB.Save(room).Error; err != nil {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error",
			"You already have a listing with this title, location, type and price.", ctx)
		return
	}

	ctx.JSON(room)
}

// DeleteRoom removes the room and everything hanging off it in one
// transaction. Deletion is immediate, no soft-delete residue.
func DeleteRoom(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	room, found := ownedRoomByID(ctx, userID)
	if !found {
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("room_id = ?", room.ID).Delete(&models.RoomStat{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("room_id = ?", room.ID).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("room_id = ?", room.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("room_id = ?", room.ID).Delete(&models.RoomImage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Room{}, room.ID).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// ownedRoomByID loads the room scoped by owner. Rooms belonging to someone
// else look exactly like rooms that do not exist.
func ownedRoomByID(ctx iris.Context, userID uint) (*models.Room, bool) {
	id := ctx.Params().Get("id")

	var room models.Room
	roomExists := storage.DB.Where("owner_id = ?", userID).Find(&room, id)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil, false
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil, false
	}

	return &room, true
}

// duplicateListingExists implements the duplicate-listing guard: same owner,
// same (title, location, type, price) tuple, case-insensitive on the text
// fields. The guard no-ops when any of the four fields is absent.
func duplicateListingExists(ownerID uint, input *RoomInput, excludeID uint) (bool, error) {
	if input.Title == "" || input.Location == "" || input.RoomType == "" {
		return false, nil
	}

	query := storage.DB.Model(&models.Room{}).
		Where("owner_id = ?", ownerID).
		Where("lower(title) = lower(?)", input.Title).
		Where("lower(location) = lower(?)", input.Location).
		Where("room_type = ?", input.RoomType).
		Where("price = ?", input.Price)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
