package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB swaps the global DB for an in-memory sqlite database carrying
// the production schema, duplicate-listing index included.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	storage.Migrate(db)
	storage.DB = db
	storage.InitializeRedis()

	return db
}

// buildTestApp wires the full route table against real JWT verifiers, the
// same way main does.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "testaccesssecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})
	optionalUserMiddleware := utils.OptionalUserIDMiddleware(accessTokenVerifier)

	app.Get("/api/home", Home)

	user := app.Party("/api/user")
	{
		user.Post("/register", Register)
		user.Post("/login", Login)
		user.Post("/logout", accessTokenVerifierMiddleware, Logout)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Get("/", SearchRooms)
		rooms.Get("/{id:uint}", optionalUserMiddleware, GetRoom)
		rooms.Post("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, CreateRoom)
		rooms.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, UpdateRoom)
		rooms.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, DeleteRoom)
		rooms.Post("/{id:uint}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, UploadRoomImages)
		rooms.Get("/{id:uint}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, ListRoomImages)
		rooms.Get("/{id:uint}/reviews", ListRoomReviews)
		rooms.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, CreateRoomReview)
	}

	app.Delete("/api/images/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, DeleteRoomImage)

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware)
	{
		dashboard.Get("/", Dashboard)
		dashboard.Get("/stats", DashboardStats)
	}

	app.Get("/api/track-contact/{id:uint}/{method:string}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, TrackContact)
	app.Get("/api/mark-success/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, MarkSuccess)

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app
}

// signTestToken returns a signed access token for the given identity.
func signTestToken(id uint, role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, _ := signer.Sign(utils.AccessToken{ID: id, Role: role})
	return string(token)
}

func doRequest(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{FirstName: "Test", LastName: "User", Email: email, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	profile := models.Profile{UserID: user.ID, Role: role}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user
}

type testRoomOpts struct {
	Owner       *uint
	Title       string
	Description string
	Price       float64
	Location    string
	RoomType    string
	Phone       string
	WhatsApp    string
	Email       string
	Unavailable bool
	CreatedAt   time.Time
}

func createTestRoom(t *testing.T, db *gorm.DB, opts testRoomOpts) models.Room {
	t.Helper()

	available := !opts.Unavailable
	room := models.Room{
		OwnerID:         opts.Owner,
		Title:           opts.Title,
		Description:     opts.Description,
		Price:           opts.Price,
		Location:        opts.Location,
		RoomType:        opts.RoomType,
		ContactPhone:    opts.Phone,
		ContactWhatsApp: opts.WhatsApp,
		ContactEmail:    opts.Email,
		IsAvailable:     &available,
	}
	if !opts.CreatedAt.IsZero() {
		room.CreatedAt = opts.CreatedAt
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}
