package routes

import (
	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
)

// MaxImagesPerUpload caps one upload batch. Enforced at the input boundary,
// not as a stored limit on the room.
const MaxImagesPerUpload = 10

type UploadImagesInput struct {
	Images []string `json:"images" validate:"required,min=1"` // base64 payloads
}

// UploadRoomImages appends up to ten images to an owned room. Extra payloads
// beyond the cap are silently dropped, matching the form boundary.
func UploadRoomImages(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	room, found := ownedRoomByID(ctx, userID)
	if !found {
		return
	}

	var input UploadImagesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	payloads := input.Images
	if len(payloads) > MaxImagesPerUpload {
		payloads = payloads[:MaxImagesPerUpload]
	}

	created := make([]models.RoomImage, 0, len(payloads))
	for i, data := range payloads {
		url, err := storage.UploadRoomImage(data, room.ID, i)
		if err != nil || url == "" {
			continue
		}

		image := models.RoomImage{RoomID: room.ID, URL: url}
		if err := storage.DB.Create(&image).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		created = append(created, image)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(created)
}

// ListRoomImages is the owner's edit-screen view of a room's images.
func ListRoomImages(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	room, found := ownedRoomByID(ctx, userID)
	if !found {
		return
	}

	var images []models.RoomImage
	if err := storage.DB.Where("room_id = ?", room.ID).Find(&images).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(images)
}

// DeleteRoomImage removes one image, scoped through the owning room: images
// on someone else's room are not-found, never forbidden.
func DeleteRoomImage(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	id := ctx.Params().Get("id")

	var image models.RoomImage
	imageExists := storage.DB.
		Joins("JOIN rooms ON rooms.id = room_images.room_id").
		Where("rooms.owner_id = ?", userID).
		Where("room_images.id = ?", id).
		Find(&image)
	if imageExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if imageExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&models.RoomImage{}, image.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Best effort; the CDN asset going stale is acceptable.
	storage.DeleteRoomImage(image.URL)

	ctx.StatusCode(iris.StatusNoContent)
}
