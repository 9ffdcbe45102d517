package routes

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/stretchr/testify/require"
)

type searchResult struct {
	Room struct {
		ID       uint   `json:"ID"`
		Title    string `json:"title"`
		Location string `json:"location"`
		RoomType string `json:"roomType"`
	} `json:"room"`
	AvgRating    *float64 `json:"avgRating"`
	ReviewCount  int64    `json:"reviewCount"`
	ContactCount int64    `json:"contactCount"`
}

func decodeSearch(t *testing.T, body []byte) []searchResult {
	t.Helper()
	var results []searchResult
	require.NoError(t, json.Unmarshal(body, &results))
	return results
}

func TestSearchFiltersByLocationAndType(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestRoom(t, db, testRoomOpts{Title: "Single in Soshanguve", Location: "Soshanguve", RoomType: "single", CreatedAt: base})
	createTestRoom(t, db, testRoomOpts{Title: "Older flat", Location: "Mamelodi West", RoomType: "flat", CreatedAt: base.Add(1 * time.Hour)})
	createTestRoom(t, db, testRoomOpts{Title: "Newer flat", Location: "Mamelodi East", RoomType: "flat", CreatedAt: base.Add(2 * time.Hour)})
	createTestRoom(t, db, testRoomOpts{Title: "Shared in Mamelodi", Location: "Mamelodi", RoomType: "shared", CreatedAt: base.Add(3 * time.Hour)})
	createTestRoom(t, db, testRoomOpts{Title: "Flat elsewhere", Location: "Atteridgeville", RoomType: "flat", CreatedAt: base.Add(4 * time.Hour)})

	resp := doRequest(app, http.MethodGet, "/api/rooms?location=Mamelodi&type=flat", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	results := decodeSearch(t, resp.Body.Bytes())
	require.Len(t, results, 2)
	require.Equal(t, "Newer flat", results[0].Room.Title, "newest first")
	require.Equal(t, "Older flat", results[1].Room.Title)
}

func TestSearchFreeTextMatchesAcrossFields(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)

	createTestRoom(t, db, testRoomOpts{Title: "Cozy room near TUT", Description: "quiet area", Location: "Pretoria", RoomType: "single"})
	createTestRoom(t, db, testRoomOpts{Title: "Budget stay", Description: "right next to TUT campus", Location: "Pretoria", RoomType: "shared"})
	createTestRoom(t, db, testRoomOpts{Title: "Garden cottage", Description: "secure", Location: "Tutville", RoomType: "flat"})
	createTestRoom(t, db, testRoomOpts{Title: "No match here", Description: "none", Location: "Centurion", RoomType: "single"})

	resp := doRequest(app, http.MethodGet, "/api/rooms?q=tut", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	results := decodeSearch(t, resp.Body.Bytes())
	require.Len(t, results, 3, "title, description and location matches are all included")
	for _, r := range results {
		require.NotEqual(t, "No match here", r.Room.Title)
	}

	// Room type display labels match too: "flat" hits "Flat / Apartment".
	resp = doRequest(app, http.MethodGet, "/api/rooms?q=apartment", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	results = decodeSearch(t, resp.Body.Bytes())
	require.Len(t, results, 1)
	require.Equal(t, "Garden cottage", results[0].Room.Title)
}

func TestSearchExcludesUnavailableRooms(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)

	createTestRoom(t, db, testRoomOpts{Title: "Visible", Location: "Mamelodi", RoomType: "single"})
	hidden := createTestRoom(t, db, testRoomOpts{Title: "Hidden", Location: "Mamelodi", RoomType: "single", Unavailable: true})

	resp := doRequest(app, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	results := decodeSearch(t, resp.Body.Bytes())
	require.Len(t, results, 1)
	require.Equal(t, "Visible", results[0].Room.Title)

	// The detail view treats unavailable as missing, and records nothing.
	resp = doRequest(app, http.MethodGet, "/api/rooms/"+itoa(hidden.ID), "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	var statCount int64
	db.Model(&models.RoomStat{}).Where("room_id = ?", hidden.ID).Count(&statCount)
	require.Zero(t, statCount)
}

func TestSearchAnnotations(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)

	reviewer := createTestUser(t, db, "tenant@example.com", models.RoleTenant)
	rated := createTestRoom(t, db, testRoomOpts{Title: "Rated", Location: "Mamelodi", RoomType: "single"})
	createTestRoom(t, db, testRoomOpts{Title: "Unrated", Location: "Mamelodi", RoomType: "single"})

	require.NoError(t, db.Create(&models.Review{RoomID: rated.ID, UserID: reviewer.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.Review{RoomID: rated.ID, UserID: reviewer.ID, Rating: 5}).Error)

	// Two contact events and one view; only contact_* counts.
	require.NoError(t, db.Create(&models.RoomStat{RoomID: rated.ID, UserID: &reviewer.ID, StatType: models.StatContactPhone}).Error)
	require.NoError(t, db.Create(&models.RoomStat{RoomID: rated.ID, UserID: &reviewer.ID, StatType: models.StatContactEmail}).Error)
	require.NoError(t, db.Create(&models.RoomStat{RoomID: rated.ID, UserID: &reviewer.ID, StatType: models.StatView}).Error)

	resp := doRequest(app, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	results := decodeSearch(t, resp.Body.Bytes())
	require.Len(t, results, 2)

	byTitle := map[string]searchResult{}
	for _, r := range results {
		byTitle[r.Room.Title] = r
	}

	ratedResult := byTitle["Rated"]
	require.NotNil(t, ratedResult.AvgRating)
	require.InDelta(t, 4.5, *ratedResult.AvgRating, 0.001)
	require.EqualValues(t, 2, ratedResult.ReviewCount)
	require.EqualValues(t, 2, ratedResult.ContactCount)

	unratedResult := byTitle["Unrated"]
	require.Nil(t, unratedResult.AvgRating, "zero reviews render as no rating, never zero")
	require.EqualValues(t, 0, unratedResult.ReviewCount)
	require.EqualValues(t, 0, unratedResult.ContactCount)
}
