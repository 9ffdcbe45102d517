package storage

import (
	"log"
	"os"

	"github.com/AlexMorea/rentaroom/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

// Migrate runs schema migrations. Exposed so the test database (sqlite
// in-memory) gets the exact same schema, unique indexes included.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Room{},
		&models.RoomImage{},
		&models.Contact{},
		&models.RoomStat{},
		&models.Review{},
	)

	// AutoMigrate cannot express a case-insensitive composite index, so the
	// duplicate-listing guard is enforced here. Two racing submissions of the
	// same (owner, title, location, type, price) tuple cannot both land.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_rooms_owner_dedup
		ON rooms (owner_id, lower(title), lower(location), room_type, price)
	`).Error; err != nil {
		log.Println("Warning: failed to create duplicate-listing index:", err)
	}
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	Migrate(db)
	return db
}
