package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelease/internal/cache"
	"hotelease/internal/config"
	"hotelease/internal/database"
	"hotelease/internal/middleware"
	"hotelease/internal/modules/admin"
	"hotelease/internal/modules/auth"
	"hotelease/internal/modules/booking"
	"hotelease/internal/modules/catalog"
	"hotelease/internal/modules/favorite"
	"hotelease/internal/modules/notification"
	"hotelease/internal/modules/payment"
	"hotelease/internal/modules/review"
	jwtsvc "hotelease/internal/pkg/jwt"
	"hotelease/internal/repository"
	"hotelease/internal/stripe"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTExpire)
	catalogCache := cache.New()
	processor := stripe.New(stripe.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		APIBase:       cfg.StripeAPIBase,
	})

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(hotelRepo, catalogCache)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, hotelRepo, notificationService, cfg.Currency)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(processor, bookingRepo, paymentRepo, notificationService)
	paymentHandler := payment.NewHandler(paymentService)

	reviewService := review.NewService(reviewRepo, hotelRepo, catalogCache)
	reviewHandler := review.NewHandler(reviewService)

	favoriteService := favorite.NewService(favoriteRepo, hotelRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	adminService := admin.NewService(userRepo, hotelRepo, bookingRepo, paymentRepo, notificationService, catalogCache)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)
		reviewHandler.RegisterPublicRoutes(api)
		paymentHandler.RegisterPublicRoutes(api)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.Auth(j, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			favoriteHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterRoutes(protected.Group("/users"))
		}

		// admin
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.Auth(j, userRepo), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	// no WriteTimeout: the notification stream holds its connection open
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Println("listening on", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
