package main

import (
	"context"
	"database/sql"
	"time"

	"campusx/internal/config"
	"campusx/internal/delivery/http/route"
	utils "campusx/pkg"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title        Campus X API
// @version      1.0
// @description  Campus item-exchange platform.
// @BasePath     /api
func main() {
	cfg := config.Load()

	log, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalw("failed to open postgres", "error", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalw("failed to ping postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoclient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalw("failed to connect to mongo", "error", err)
	}
	if err := mongoclient.Ping(ctx, nil); err != nil {
		log.Fatalw("failed to ping mongo", "error", err)
	}
	defer mongoclient.Disconnect(context.Background())

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.Default()
	route.SetupRoute(app, db, mongoclient, cfg, log)

	log.Infow("server starting", "addr", cfg.ServerAddr)
	if err := app.Run(cfg.ServerAddr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
