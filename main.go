package main

import (
	"log"
	"os"
	"path/filepath"

	"hunt-platform/internal"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "fallback-secret-for-dev"
		log.Printf("SESSION_SECRET not set, using dev fallback")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./public"
	}

	store := internal.MustStore(dataDir)
	sessions := internal.NewSessions()

	r := gin.Default()

	// Frontend static
	r.Static("/static", filepath.Join(staticDir, "static"))
	r.GET("/", func(c *gin.Context) { c.File(filepath.Join(staticDir, "index.html")) })
	r.GET("/index.html", func(c *gin.Context) { c.File(filepath.Join(staticDir, "index.html")) })
	r.GET("/map.html", func(c *gin.Context) { c.File(filepath.Join(staticDir, "map.html")) })

	// Session-gated pages
	gate := internal.PageAuth(sessions, secret)
	r.GET("/dashboard.html", gate, func(c *gin.Context) { c.File(filepath.Join(staticDir, "dashboard.html")) })
	r.GET("/admin.html", gate, internal.RequireAdminPage(), func(c *gin.Context) { c.File(filepath.Join(staticDir, "admin.html")) })

	r.POST("/login", internal.Login(store, sessions, secret))
	r.POST("/logout", internal.Logout(sessions, secret))
	r.POST("/create-admin", internal.CreateAdmin(store))

	r.POST("/submit-code", internal.SubmitCode(store))
	r.POST("/verify-clue", internal.VerifyClue(store))

	r.GET("/admin-teams", internal.AdminTeams(store))
	r.GET("/admin-clues", internal.AdminClues(store))
	r.GET("/debug-clue/:code", internal.DebugClue(store))

	r.POST("/create-team", internal.CreateTeam(store))
	r.POST("/reset-team", internal.ResetTeam(store))
	r.POST("/reset-all", internal.ResetAll(store))
	r.POST("/reset-points", internal.ResetPoints(store))

	log.Printf("Server running on http://localhost:%s", port)
	_ = r.Run(":" + port)
}
