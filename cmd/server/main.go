package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/ekaraca/carmarket/internal/config"
    "github.com/ekaraca/carmarket/internal/database"
    "github.com/ekaraca/carmarket/internal/handler"
    "github.com/ekaraca/carmarket/internal/logger"
    "github.com/ekaraca/carmarket/internal/queue"
    "github.com/ekaraca/carmarket/internal/repository"
    "github.com/ekaraca/carmarket/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient()

    fileLog, err := logger.NewFileLogger(cfg.LogDir)
    if err != nil {
        log.Fatalf("file logger: %v", err)
    }

    users := repository.NewUserRepo(db)
    cars := repository.NewCarRepo(db)
    images := repository.NewImageRepo(db)
    favorites := repository.NewFavoriteRepo(db)
    offers := repository.NewOfferRepo(db)
    notifications := repository.NewNotificationRepo(db)
    logs := repository.NewLogRepo(db)

    h := router.Handlers{
        Users:         handler.NewUserHandler(cfg, users, fileLog),
        Cars:          handler.NewCarHandler(cars),
        Images:        handler.NewImageHandler(cfg, images, cars),
        Favorites:     handler.NewFavoriteHandler(favorites),
        Offers:        handler.NewOfferHandler(offers, cars, notifications, fileLog),
        Notifications: handler.NewNotificationHandler(notifications),
        Logs:          handler.NewLogHandler(logs),
    }

    // Sale events land in logs/sales.log; the consumer reconnects forever on
    // its own.
    go func() {
        if err := queue.StartOfferConsumer(); err != nil {
            log.Printf("offer consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    router.Register(e, cfg, h, rdb)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
