package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"backline/internal/config"
	"backline/internal/database"
	"backline/internal/middleware"
	"backline/internal/modules/auth"
	"backline/internal/modules/availability"
	"backline/internal/modules/booking"
	"backline/internal/modules/catalog"
	"backline/internal/modules/live"
	"backline/internal/modules/store"
	jwtsvc "backline/internal/pkg/jwt"
	"backline/internal/repository"
	"backline/internal/schedule"
	"backline/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	productRepo := repository.NewProductRepository(db)
	rentalRepo := repository.NewRentalRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	engine := schedule.NewEngine(cfg.Schedule, time.Now)
	hub := live.NewHub()

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	availabilityHandler := availability.NewHandler(
		availability.NewService(roomRepo, bookingRepo, engine),
	)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, roomRepo, engine, hub),
	)
	catalogHandler := catalog.NewHandler(
		catalog.NewService(roomRepo, bookingRepo, time.Now),
	)
	storeHandler := store.NewHandler(
		store.NewService(productRepo, rentalRepo, time.Now),
	)
	liveHandler := live.NewHandler(hub)

	completer := worker.NewCompleter(bookingRepo, cfg.Completer.Interval, time.Now)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go completer.Run(ctx)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	responseCache := gocache.New(cacheTTL, 2*cacheTTL)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		// Catalog and store reads may lag a little; availability never does.
		cached := v1.Group("/")
		cached.Use(middleware.Cache(responseCache, cacheTTL))
		{
			catalogHandler.RegisterPublicRoutes(cached)
			storeHandler.RegisterPublicRoutes(cached)
		}

		limited := v1.Group("/")
		limited.Use(middleware.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
		{
			bookingHandler.RegisterPublicRoutes(limited)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.RequireRole("admin"))
		{
			bookingHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
			storeHandler.RegisterAdminRoutes(admin)
			liveHandler.RegisterRoutes(admin)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
