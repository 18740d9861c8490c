package main

import (
	"os"

	"github.com/ArjunKaliyath/socials/auth"
	"github.com/ArjunKaliyath/socials/imagestore"
	"github.com/ArjunKaliyath/socials/realtime"
	"github.com/ArjunKaliyath/socials/server"
	"github.com/ArjunKaliyath/socials/utils"
	"github.com/ArjunKaliyath/socials/utils/dotenv"
	"github.com/ArjunKaliyath/socials/utils/flag"
	Logger "github.com/ArjunKaliyath/socials/utils/log"
)

const defaultPort = "8080"

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatalf("fail to connect to DB: %v", err)
	}
	utils.DatabaseSetupAndMigration(db)

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		Logger.Log.Fatal("TOKEN_SECRET must be set")
	}
	tokens := auth.NewTokenManager(secret, auth.DefaultTokenDuration)

	images, err := imagestore.NewLocalImageStore(imagestore.PublicPrefix)
	if err != nil {
		Logger.Log.Fatalf("fail to set up image store: %v", err)
	}

	hub := realtime.NewHub()

	router := server.NewRouter(db, tokens, hub, images)
	// Uploaded images are public and referenced by post-relative path.
	router.Static("/"+imagestore.PublicPrefix, "./"+imagestore.PublicPrefix)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	Logger.Log.Info("api server starts up")
	if err := router.Run(":" + port); err != nil {
		Logger.Log.Fatalf("api server terminated: %v", err)
	}
}
