package routes

import (
	"time"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
)

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userID"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user"`
}

// CreateRoomReview creates a review, gated on a prior Contact for the same
// (user, room) pair. No contact, no review.
func CreateRoomReview(ctx iris.Context) {
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

	var contactCount int64
	if err := storage.DB.Model(&models.Contact{}).
		Where("room_id = ? AND user_id = ?", room.ID, userID).
		Count(&contactCount).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if contactCount == 0 {
		utils.CreateForbidden(ctx, "Contact the landlord first.")
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review := models.Review{
		RoomID:  room.ID,
		UserID:  userID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

// ListRoomReviews returns a room's reviews, newest first, with the average.
func ListRoomReviews(ctx iris.Context) {
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

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("room_id = ?", room.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var totalRating float64
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		totalRating += float64(review.Rating)

		resp := ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
		resp.User.FirstName = review.User.FirstName
		resp.User.LastName = review.User.LastName
		responses = append(responses, resp)
	}

	result := iris.Map{
		"reviews":     responses,
		"reviewCount": len(reviews),
	}
	if len(reviews) > 0 {
		result["averageRating"] = totalRating / float64(len(reviews))
	} else {
		result["averageRating"] = nil
	}

	ctx.JSON(result)
}
