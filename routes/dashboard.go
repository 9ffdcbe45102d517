package routes

import (
	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/services"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
)

// Dashboard lists the landlord's own rooms with image and contact totals.
func Dashboard(ctx iris.Context) {
	userID, ok := utils.CurrentUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		return
	}

	var rooms []models.Room
	if err := storage.DB.Preload("Images").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var imageCount int64
	if err := storage.DB.Model(&models.RoomImage{}).
		Joins("JOIN rooms ON rooms.id = room_images.room_id").
		Where("rooms.owner_id = ?", userID).
		Count(&imageCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var contactCount int64
	if err := storage.DB.Model(&models.RoomStat{}).
		Joins("JOIN rooms ON rooms.id = room_stats.room_id").
		Where("rooms.owner_id = ?", userID).
		Where("room_stats.stat_type LIKE ?", models.ContactStatPrefix+"%").
		Count(&contactCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"rooms":        rooms,
		"imageCount":   imageCount,
		"contactCount": contactCount,
	})
}

// DashboardStats exposes the global engagement summary.
func DashboardStats(ctx iris.Context) {
	summary, err := services.BuildStatsSummary()
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(summary)
}
