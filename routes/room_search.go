package routes

import (
	"strings"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/kataras/iris/v12"
)

// AnnotatedRoom is one search result row. AvgRating is nil when the room has
// no reviews yet; clients render that as "no rating".
type AnnotatedRoom struct {
	Room         *models.Room `json:"room"`
	AvgRating    *float64     `json:"avgRating"`
	ReviewCount  int64        `json:"reviewCount"`
	ContactCount int64        `json:"contactCount"`
}

type roomAggregate struct {
	RoomID uint
	Avg    float64
	Count  int64
}

// SearchRooms filters the available catalog by free-text query, location and
// room type, newest first, each row annotated with rating and engagement
// aggregates.
func SearchRooms(ctx iris.Context) {
	query := storage.DB.Model(&models.Room{}).Where("is_available = ?", true)

	if q := strings.TrimSpace(ctx.URLParam("q")); q != "" {
		needle := "%" + strings.ToLower(q) + "%"

		// Room types are matched through their display labels, which only
		// exist Go-side; resolve them to stored values first.
		var matchingTypes []string
		for value, label := range models.RoomTypeLabels {
			if strings.Contains(strings.ToLower(label), strings.ToLower(q)) {
				matchingTypes = append(matchingTypes, value)
			}
		}

		if len(matchingTypes) > 0 {
			query = query.Where(
				"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(location) LIKE ? OR room_type IN (?)",
				needle, needle, needle, matchingTypes)
		} else {
			query = query.Where(
				"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(location) LIKE ?",
				needle, needle, needle)
		}
	}

	if location := strings.TrimSpace(ctx.URLParam("location")); location != "" {
		query = query.Where("lower(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	if roomType := strings.TrimSpace(ctx.URLParam("type")); roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}

	var rooms []models.Room
	if err := query.Preload("Images").Order("created_at DESC").Order("id DESC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	results, err := annotateRooms(rooms)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(results)
}

// annotateRooms attaches average rating, review count and contact-event
// count to each room in two grouped queries.
func annotateRooms(rooms []models.Room) ([]AnnotatedRoom, error) {
	results := make([]AnnotatedRoom, 0, len(rooms))
	if len(rooms) == 0 {
		return results, nil
	}

	ids := make([]uint, 0, len(rooms))
	for i := range rooms {
		ids = append(ids, rooms[i].ID)
	}

	var reviewAggs []roomAggregate
	if err := storage.DB.Model(&models.Review{}).
		Select("room_id, AVG(rating) AS avg, COUNT(id) AS count").
		Where("room_id IN (?)", ids).
		Group("room_id").
		Scan(&reviewAggs).Error; err != nil {
		return nil, err
	}

	var contactAggs []roomAggregate
	if err := storage.DB.Model(&models.RoomStat{}).
		Select("room_id, COUNT(id) AS count").
		Where("room_id IN (?)", ids).
		Where("stat_type LIKE ?", models.ContactStatPrefix+"%").
		Group("room_id").
		Scan(&contactAggs).Error; err != nil {
		return nil, err
	}

	reviewsByRoom := make(map[uint]roomAggregate, len(reviewAggs))
	for _, agg := range reviewAggs {
		reviewsByRoom[agg.RoomID] = agg
	}
	contactsByRoom := make(map[uint]int64, len(contactAggs))
	for _, agg := range contactAggs {
		contactsByRoom[agg.RoomID] = agg.Count
	}

	for i := range rooms {
		item := AnnotatedRoom{
			Room:         &rooms[i],
			ContactCount: contactsByRoom[rooms[i].ID],
		}
		if agg, ok := reviewsByRoom[rooms[i].ID]; ok && agg.Count > 0 {
			avg := agg.Avg
			item.AvgRating = &avg
			item.ReviewCount = agg.Count
		}
		results = append(results, item)
	}

	return results, nil
}
