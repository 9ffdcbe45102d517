package routes

import (
	"fmt"
	"os"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm/clause"
)

func appName() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "RentARoom"
}

// TrackContact records a contact event, establishes the durable Contact fact
// for review eligibility, and redirects the caller to the landlord's
// tel:/wa.me/mailto: target. Missing contact info soft-fails back to the
// room page; the stat and Contact row still stand (steps are deliberately
// not transactional with the redirect).
func TrackContact(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	id := ctx.Params().Get("id")
	method := ctx.Params().Get("method")

	var room models.Room
	roomExists := storage.DB.Find(&room, id)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	roomPage := fmt.Sprintf("/api/rooms/%d", room.ID)

	// Unavailable room or unknown method: no side effects at all.
	if !room.Available() || !slices.Contains(utils.ContactMethods, method) {
		ctx.Redirect(roomPage, iris.StatusFound)
		return
	}

	stat := models.RoomStat{
		RoomID:   room.ID,
		UserID:   &userID,
		StatType: models.ContactStatPrefix + "_" + method,
	}
	if err := storage.DB.Create(&stat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Idempotent: at most one Contact per (room, user), however many times
	// the tenant reaches out.
	contact := models.Contact{RoomID: room.ID, UserID: userID}
	if err := storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&contact).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ownerEmail := ""
	if room.OwnerID != nil {
		var owner models.User
		if err := storage.DB.Select("id, email").First(&owner, *room.OwnerID).Error; err == nil {
			ownerEmail = owner.Email
		}
	}

	link := utils.BuildContactLink(&room, ownerEmail, method, appName())
	if link == "" {
		ctx.Redirect(roomPage, iris.StatusFound)
		return
	}

	ctx.Redirect(link, iris.StatusFound)
}

// MarkSuccess appends a success stat, recording that the enquiry worked out.
func MarkSuccess(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	id := ctx.Params().Get("id")

	var room models.Room
	roomExists := storage.DB.Find(&room, id)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	stat := models.RoomStat{
		RoomID:   room.ID,
		UserID:   &userID,
		StatType: models.StatSuccess,
	}
	if err := storage.DB.Create(&stat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Thanks for confirming!"})
}
