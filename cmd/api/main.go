package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/univflow/admission-api/internal/cache"
	"github.com/univflow/admission-api/internal/chat"
	"github.com/univflow/admission-api/internal/config"
	"github.com/univflow/admission-api/internal/handlers"
	"github.com/univflow/admission-api/internal/middleware"
	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/remote"
	"github.com/univflow/admission-api/internal/utils"
	"github.com/univflow/admission-api/internal/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is not set, token issuance will fail.")
	}

	// --- Remote store (authoritative) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)
	log.Println("Connected to MongoDB.")

	// --- Cache store (fast local mirror) ---
	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}))
		log.Printf("Using Redis cache at %s", cfg.RedisAddr)
	} else {
		store = cache.NewMemoryStore()
		log.Println("REDIS_ADDR not set, cache snapshots will not survive restarts.")
	}

	// --- Workflow core ---
	tracker := workflow.NewTracker(remote.NewMongoClient(db))
	tracker.Subscribe(workflow.CacheMirror(store))
	tracker.SeedUsers(bootstrapUsers(cfg))
	tracker.Reconcile(context.Background(), store)

	chatLog := chat.NewLog(store, cfg.ChatRetention)
	chatLog.Load(context.Background())

	h := handlers.NewHandler(tracker, chatLog)

	// --- Gin router ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware())
	{
		apiRoutes.POST("/logout", h.Logout)
		apiRoutes.GET("/me", h.GetCurrentUser)

		apiRoutes.GET("/agents", h.ListAgents)
		apiRoutes.POST("/agents", h.AddAgent)
		apiRoutes.PUT("/agents/:id", h.UpdateAgent)
		apiRoutes.DELETE("/agents/:id", h.DeleteAgent)

		apiRoutes.GET("/students", h.ListStudents)
		apiRoutes.GET("/students/:id", h.GetStudent)
		apiRoutes.DELETE("/students/:id", h.DeleteStudent)
		apiRoutes.POST("/students/:id/view", h.ViewStudent)

		apiRoutes.POST("/enquiries", h.CreateEnquiry)
		apiRoutes.POST("/students/:id/application-fee", h.PayApplicationFee)
		apiRoutes.POST("/students/:id/registration-fee", h.PayRegistrationFee)
		apiRoutes.POST("/students/:id/visit", h.RecordVisit)
		apiRoutes.POST("/students/:id/admission", h.CompleteAdmission)

		apiRoutes.GET("/workflow", h.GetWorkflow)
		apiRoutes.POST("/workflow/dashboard", h.ExitToDashboard)
		apiRoutes.POST("/workflow/new", h.StartEnquiry)

		apiRoutes.GET("/chat", h.GetChatMessages)
		apiRoutes.POST("/chat", h.PostChatMessage)
		apiRoutes.GET("/chat/stream", h.StreamChatMessages)
	}

	log.Printf("Starting server on port %s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// bootstrapUsers builds the seed admin so a fresh deployment has someone to
// sign in as before any cache or remote data exists.
func bootstrapUsers(cfg config.Config) []models.User {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, no bootstrap admin seeded.")
		return nil
	}
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return nil
	}
	return []models.User{{
		ID:       "admin",
		Username: cfg.AdminUsername,
		Name:     cfg.AdminName,
		Mobile:   cfg.AdminMobile,
		Role:     models.RoleAdmin,
		Password: hash,
	}}
}
