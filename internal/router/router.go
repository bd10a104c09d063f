package router

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rusi-notes/backend/internal/handlers"
	"github.com/rusi-notes/backend/internal/middleware"
	"github.com/rusi-notes/backend/internal/models"
	"github.com/rusi-notes/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = httpErrorHandler
	log.Println("Global middleware configured.")
}

// httpErrorHandler renders every error as {"error": "..."} so clients get one
// consistent shape regardless of which layer failed
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			log.Printf("error handler: %v", err)
		}
		return
	}
	if err := c.JSON(code, echo.Map{"error": message}); err != nil {
		log.Printf("error handler: %v", err)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Dish{},
		&models.DishFeedback{},
		&models.TastingNote{},
		&models.Like{},
		&models.Bookmark{},
		&models.Comment{},
		&models.FriendRequest{},
		&models.Follow{},
		&models.Group{},
		&models.GroupMember{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	restaurantRepo := repositories.NewPostgresRestaurantRepository(pgdb)
	dishRepo := repositories.NewPostgresDishRepository(pgdb)
	feedbackRepo := repositories.NewPostgresFeedbackRepository(pgdb)
	noteRepo := repositories.NewPostgresNoteRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database("rusinotes"))
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	userHandler := handlers.NewUserHandler(userRepo)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantRepo, userRepo, notificationRepo)
	dishHandler := handlers.NewDishHandler(dishRepo, restaurantRepo, feedbackRepo)
	noteHandler := handlers.NewNoteHandler(noteRepo, userRepo, likeRepo, bookmarkRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, noteRepo, notificationRepo)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, noteRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, noteRepo, notificationRepo)
	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo, notificationRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	groupHandler := handlers.NewGroupHandler(groupRepo, messageRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api/v1")
	userHandler.RegisterPublicRoutes(public)
	restaurantHandler.RegisterPublicRoutes(public)
	dishHandler.RegisterPublicRoutes(public)
	log.Println("Public routes configured.")

	// --- Optional-auth routes (anonymous callers get a neutral answer) ---
	optional := e.Group("/api/v1")
	optional.Use(middleware.OptionalJWTMiddleware())
	bookmarkHandler.RegisterCheckRoute(optional)

	// --- Protected routes (require JWT authentication) ---
	// Profile routes stay outside the onboarding gate so a fresh identity can
	// claim its handle and inspect its own state.
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	userHandler.RegisterProfileRoutes(api)
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// --- Onboarded routes (JWT + handle required) ---
	onboarded := e.Group("/api/v1")
	onboarded.Use(middleware.JWTAuthMiddleware())
	onboarded.Use(middleware.RequireHandle(userRepo))

	restaurantHandler.RegisterRestaurantRoutes(onboarded)
	dishHandler.RegisterDishRoutes(onboarded)
	noteHandler.RegisterNoteRoutes(onboarded)
	likeHandler.RegisterLikeRoutes(onboarded)
	bookmarkHandler.RegisterBookmarkRoutes(onboarded)
	commentHandler.RegisterCommentRoutes(onboarded)
	friendshipHandler.RegisterFriendshipRoutes(onboarded)
	followHandler.RegisterFollowRoutes(onboarded)
	groupHandler.RegisterGroupRoutes(onboarded)
	notificationHandler.RegisterNotificationRoutes(onboarded)
	log.Println("Onboarded routes configured.")

	// --- Business routes (dish management) ---
	business := e.Group("/api/v1")
	business.Use(middleware.JWTAuthMiddleware())
	business.Use(middleware.RequireHandle(userRepo))
	business.Use(middleware.RequireRole(models.RoleBusiness, models.RoleAdmin))
	dishHandler.RegisterBusinessRoutes(business)
	log.Println("Business routes configured.")

	// --- Admin routes ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	restaurantHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
