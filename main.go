package main

import (
	"fmt"
	"log"
	"os"

	"github.com/AlexMorea/rentaroom/routes"
	"github.com/AlexMorea/rentaroom/storage"
	"github.com/AlexMorea/rentaroom/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeCloudinary()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	optionalUserMiddleware := utils.OptionalUserIDMiddleware(accessTokenVerifier)

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	app.Get("/api/home", routes.Home)

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/logout", accessTokenVerifierMiddleware, routes.Logout)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Get("/", routes.SearchRooms)
		rooms.Get("/{id:uint}", optionalUserMiddleware, routes.GetRoom)
		rooms.Post("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.CreateRoom)
		rooms.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateRoom)
		rooms.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteRoom)
		rooms.Post("/{id:uint}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UploadRoomImages)
		rooms.Get("/{id:uint}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListRoomImages)
		rooms.Get("/{id:uint}/reviews", routes.ListRoomReviews)
		rooms.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateRoomReview)
	}

	app.Delete("/api/images/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteRoomImage)

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware)
	{
		dashboard.Get("/", routes.Dashboard)
		dashboard.Get("/stats", routes.DashboardStats)
	}

	app.Get("/api/track-contact/{id:uint}/{method:string}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.TrackContact)
	app.Get("/api/mark-success/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MarkSuccess)

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
