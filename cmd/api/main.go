package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"mentorlink/internal/adapter/api"
	"mentorlink/internal/adapter/api/handler"
	apimiddleware "mentorlink/internal/adapter/api/middleware"
	"mentorlink/internal/adapter/api/router"
	"mentorlink/internal/adapter/repository"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/infrastructure/firebase"
	"mentorlink/internal/infrastructure/storage"
	"mentorlink/internal/infrastructure/websocket"
	"mentorlink/internal/usecase"
	"mentorlink/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		credentialsPath = ""
	} else {
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		log.Printf("Using Firebase service account from file: %s", credentialsPath)
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	groupRepo := repository.NewFirestoreGroupRepository(firestoreClient)
	jobRepo := repository.NewFirestoreJobRepository(firestoreClient)
	communityRepo := repository.NewFirestoreCommunityRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	// Redis is optional; with no address configured the cache degrades
	// to repository lookups.
	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	profileCache := cache.NewProfileCache(redisCache)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient, storageClient, profileCache)
	chatUseCase := usecase.NewChatUseCase(chatRepo, groupRepo, userRepo, profileCache)
	groupUseCase := usecase.NewGroupUseCase(groupRepo, chatRepo)
	jobUseCase := usecase.NewJobUseCase(jobRepo)
	communityUseCase := usecase.NewCommunityUseCase(communityRepo)

	handler.Setup(authUseCase, userUseCase, chatUseCase, groupUseCase, jobUseCase, communityUseCase)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	wsHandler := handler.NewWebSocketHandler(ctx, wsManager, authMiddleware, authUseCase, chatUseCase, groupUseCase, cfg.ChatPollInterval)

	router.Setup(e, authMiddleware, roleMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
