package main

import (
	"log"
	"os"

	"gareddit/internal/config"
	"gareddit/internal/db"
	"gareddit/internal/handlers"
	"gareddit/internal/middleware"
	"gareddit/internal/services"
	"gareddit/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	conn := db.Init()

	// Services
	tokenStore := utils.NewCache(500)
	tokens := services.NewTokenService(tokenStore)
	mail := services.NewMailService()
	votes := services.NewVoteService(conn)
	reconcile := services.NewReconcileService(conn)

	r := gin.Default()

	// Sessions: long-lived cookie, http-only
	secret := config.Getenv("SESSION_SECRET", "secret_key_change_me")
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   config.SessionMaxAge,
		Path:     "/",
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(config.SessionCookieName, store))

	// Middleware
	r.Use(middleware.LoadUser(conn))
	r.Use(middleware.Loaders(conn))

	// Handlers
	authHandler := handlers.NewAuthHandler(conn, tokens, mail)
	postHandler := handlers.NewPostHandler(conn)
	voteHandler := handlers.NewVoteHandler(votes, reconcile)
	userHandler := handlers.NewUserHandler(conn)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/me", authHandler.Me)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/change-password", authHandler.ChangePassword)

		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Detail)

		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.Get)
		api.DELETE("/users/:id", userHandler.Delete)
	}

	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/vote", voteHandler.Vote)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("gareddit server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
