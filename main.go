package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fotostand/controller"
	"fotostand/cooldown"
	"fotostand/database"
	"fotostand/index"
	"fotostand/middlewares"
	"fotostand/route"
	"fotostand/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(err)
	}

	store, err := storage.NewR2(context.Background(), storage.Config{
		Endpoint:  os.Getenv("R2_ENDPOINT"),
		AccessKey: os.Getenv("R2_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
		Bucket:    os.Getenv("BUCKET_NAME"),
	})
	if err != nil {
		log.Fatal("Failed to build R2 client:", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	photoIndex := index.NewMongo(database.Client, "fotostand", "photos")

	cooldownPath := os.Getenv("COOLDOWN_FILE")
	if cooldownPath == "" {
		cooldownPath = ".cooldown.json"
	}
	guard, err := cooldown.New(cooldownPath, cooldown.DefaultWindow)
	if err != nil {
		log.Fatal("Failed to load cooldown state:", err)
	}

	days := strings.Split(os.Getenv("EVENT_DAYS"), ",")
	if len(days) == 1 && days[0] == "" {
		days = []string{"07", "08"}
	}

	controller.InitPhotos(store, photoIndex, guard, os.Getenv("PUBLIC_URL_BASE"), days)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "http://")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimit := middlewares.NewRateLimiter(120, time.Minute)
	route.Protected(router)
	route.Unprotected(router, rateLimit.Middleware())

	router.Run(":8007")
}
