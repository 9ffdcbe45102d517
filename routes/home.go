package routes

import (
	"net/url"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
)

// Home is the landing payload: catalog counters for the hero section. With
// go=1 the search parameters are forwarded straight to the room search.
func Home(ctx iris.Context) {
	if ctx.URLParam("go") == "1" {
		params := url.Values{}
		for _, key := range []string{"q", "location", "type"} {
			if v := ctx.URLParam(key); v != "" {
				params.Set(key, v)
			}
		}

		target := "/api/rooms"
		if encoded := params.Encode(); encoded != "" {
			target += "?" + encoded
		}
		ctx.Redirect(target, iris.StatusFound)
		return
	}

	var roomCount, contactCount, reviewCount, landlordCount int64
	if err := storage.DB.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := storage.DB.Model(&models.Contact{}).Count(&contactCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := storage.DB.Model(&models.Review{}).Count(&reviewCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := storage.DB.Model(&models.Profile{}).Where("role = ?", models.RoleLandlord).Count(&landlordCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"roomCount":     roomCount,
		"contactCount":  contactCount,
		"reviewCount":   reviewCount,
		"landlordCount": landlordCount,
	})
}
