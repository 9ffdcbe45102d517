package services

import (
	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
)

type CityDemand struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type StatsSummary struct {
	TotalViews    int64        `json:"totalViews"`
	TotalContacts int64        `json:"totalContacts"`
	TotalSuccess  int64        `json:"totalSuccess"`
	CityDemand    []CityDemand `json:"cityDemand"`
}

// BuildStatsSummary aggregates the append-only stat log: global view,
// contact and success totals plus view counts per location, most demanded
// first.
func BuildStatsSummary() (*StatsSummary, error) {
	summary := &StatsSummary{CityDemand: []CityDemand{}}

	if err := storage.DB.Model(&models.RoomStat{}).
		Where("stat_type = ?", models.StatView).
		Count(&summary.TotalViews).Error; err != nil {
		return nil, err
	}

	if err := storage.DB.Model(&models.RoomStat{}).
		Where("stat_type LIKE ?", models.ContactStatPrefix+"%").
		Count(&summary.TotalContacts).Error; err != nil {
		return nil, err
	}

	if err := storage.DB.Model(&models.RoomStat{}).
		Where("stat_type = ?", models.StatSuccess).
		Count(&summary.TotalSuccess).Error; err != nil {
		return nil, err
	}

	if err := storage.DB.Model(&models.RoomStat{}).
		Select("rooms.location AS location, count(room_stats.id) AS count").
		Joins("JOIN rooms ON rooms.id = room_stats.room_id").
		Where("room_stats.stat_type = ?", models.StatView).
		Group("rooms.location").
		Order("count DESC").
		Scan(&summary.CityDemand).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
