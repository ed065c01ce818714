package main

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"soukly/internal/adapter/api"
	"soukly/internal/adapter/api/handler"
	apimiddleware "soukly/internal/adapter/api/middleware"
	"soukly/internal/adapter/api/router"
	"soukly/internal/adapter/repository"
	"soukly/internal/infrastructure/firebase"
	"soukly/internal/infrastructure/mail"
	"soukly/internal/infrastructure/ratelimit"
	infraredis "soukly/internal/infrastructure/redis"
	"soukly/internal/infrastructure/websocket"
	"soukly/internal/usecase"
	"soukly/pkg/config"
	"soukly/pkg/logger"
)

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if credJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); credPath != "" {
		opts = append(opts, option.WithCredentialsFile(credPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Error("failed to initialize Firebase: %v", err)
		os.Exit(1)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Error("failed to initialize Firebase Auth: %v", err)
		os.Exit(1)
	}

	fbMessaging, err := firebaseApp.Messaging(ctx)
	if err != nil {
		logger.Error("failed to initialize Firebase Messaging: %v", err)
		os.Exit(1)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Error("failed to create Firestore client: %v", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	couponRepo := repository.NewFirestoreCouponRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)
	followRepo := repository.NewFirestoreFollowRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	authClient := firebase.NewAuthClient(fbAuth, cfg.FirebaseAPIKey)
	messagingClient := firebase.NewMessagingClient(fbMessaging)
	pendingCache := infraredis.NewPendingRegistrationCache(redisClient)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, authClient, pendingCache, mailer, cfg.JWTSecret)
	twoFactorUseCase := usecase.NewTwoFactorUseCase(userRepo, authClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	itemUseCase := usecase.NewItemUseCase(itemRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, itemRepo, cfg.CourierFee)
	couponUseCase := usecase.NewCouponUseCase(couponRepo, orderRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, itemRepo, userRepo)
	followUseCase := usecase.NewFollowUseCase(followRepo, userRepo)
	reportUseCase := usecase.NewReportUseCase(reportRepo)
	notificationUseCase := usecase.NewNotificationUseCase(userRepo, messagingClient)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, wsManager, rateLimiter, notificationUseCase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authMW := apimiddleware.NewAuthMiddleware(authClient, authUseCase)
	roleMW := apimiddleware.NewRoleMiddleware(userRepo)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase, twoFactorUseCase),
		User:         handler.NewUserHandler(userUseCase),
		Item:         handler.NewItemHandler(itemUseCase),
		Order:        handler.NewOrderHandler(orderUseCase),
		Coupon:       handler.NewCouponHandler(couponUseCase),
		Review:       handler.NewReviewHandler(reviewUseCase),
		Follow:       handler.NewFollowHandler(followUseCase),
		Report:       handler.NewReportHandler(reportUseCase),
		Chat:         handler.NewChatHandler(chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		Health:       handler.NewHealthHandler(redisClient),
		WebSocket:    handler.NewWebSocketHandler(wsManager, authClient, authUseCase),
	}

	router.Setup(e, handlers, authMW, roleMW)

	logger.Info("starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
