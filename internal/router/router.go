// Package router maps the HTTP surface onto handlers and middleware.  Routes
// live in three tiers: public browse, authenticated, and admin-only; the
// role checks are enforced here with middleware, never by the client.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/ekaraca/carmarket/internal/config"
    "github.com/ekaraca/carmarket/internal/handler"
    "github.com/ekaraca/carmarket/internal/middleware"
    "github.com/ekaraca/carmarket/internal/utils"
)

// Handlers groups everything the route table needs.
type Handlers struct {
    Users         *handler.UserHandler
    Cars          *handler.CarHandler
    Images        *handler.ImageHandler
    Favorites     *handler.FavoriteHandler
    Offers        *handler.OfferHandler
    Notifications *handler.NotificationHandler
    Logs          *handler.LogHandler
}

// Register wires every route under /api.  The Redis-backed rate limiter and
// response cache front only the public browse endpoints; both degrade to
// pass-throughs when rdb is nil.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
    e.GET("/healthz", handler.Health)

    // Uploaded images are served straight from disk.
    e.Static(cfg.ImageBaseURL, cfg.ImageDir)

    api := e.Group("/api")

    // Public browse, rate limited and cached.
    public := api.Group("")
    public.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    public.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    public.GET("/car/details/:id", h.Cars.Details)
    public.GET("/car/all", h.Cars.All)
    public.GET("/car/available", h.Cars.Available)
    public.GET("/carimage/:carId", h.Images.List)

    api.POST("/user/register", h.Users.Register)
    api.POST("/user/login", h.Users.Login)

    // Everything below needs a valid token.
    auth := api.Group("")
    auth.Use(middleware.JWTAuth(cfg.JWTSecret))

    auth.GET("/car/user/:userId", h.Cars.ByOwner)
    auth.GET("/car/favorites/:userId", h.Cars.Favorites)
    auth.POST("/car/upload", h.Cars.Upload)
    auth.PUT("/car/update/:id", h.Cars.Update)
    auth.PUT("/car/mark/sold/:id", h.Cars.MarkSold)
    auth.PUT("/car/mark/available/:id", h.Cars.MarkAvailable)

    auth.POST("/carimage/upload", h.Images.Upload)

    auth.GET("/user/profile/:id", h.Users.Profile)
    auth.PUT("/user/edit/:id", h.Users.Edit)

    auth.POST("/user/favorite/add", h.Favorites.Add)
    auth.POST("/user/favorite/remove", h.Favorites.Remove)
    auth.GET("/user/favorite/check", h.Favorites.Check)
    auth.GET("/user/favorite/count/:userId", h.Favorites.Count)

    auth.POST("/offer/create", h.Offers.Create)
    auth.PUT("/offer/accept/:id", h.Offers.Accept)
    auth.PUT("/offer/reject/:id", h.Offers.Reject)
    auth.GET("/offer/sent/:userId", h.Offers.Sent)
    auth.GET("/offer/received/:userId", h.Offers.Received)
    auth.GET("/offer/received/:userId/pending", h.Offers.PendingReceived)

    auth.GET("/notification/:userId", h.Notifications.List)
    auth.GET("/notification/:userId/unread/count", h.Notifications.UnreadCount)
    auth.PUT("/notification/:userId/read", h.Notifications.MarkAllRead)

    // Admin tier.
    admin := auth.Group("")
    admin.Use(middleware.RequireRole(utils.RoleAdmin))
    admin.GET("/user/all", h.Users.ListAll)
    admin.PUT("/user/activate/:id", h.Users.Activate)
    admin.PUT("/user/deactivate/:id", h.Users.Deactivate)
    admin.GET("/log/user", h.Logs.UserLogs)
    admin.GET("/log/car", h.Logs.CarLogs)
    admin.GET("/log/offer", h.Logs.OfferLogs)
}
