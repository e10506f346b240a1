package route

import (
	"database/sql"

	httpHandler "campusx/internal/delivery/http/handler"
	"campusx/internal/delivery/http/middleware"
	mongorepo "campusx/internal/repository/mongodb"
	repo "campusx/internal/repository/postgresql"
	service "campusx/internal/service/postgresql"
	utils "campusx/pkg"

	"campusx/internal/config"
	_ "campusx/docs"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func SetupRoute(app *gin.Engine, db *sql.DB, mongoclient *mongo.Client, cfg *config.Config, log *zap.SugaredLogger) {
	// --- repositories ---
	userRepo := repo.NewUserRepository(db)
	itemRepo := repo.NewItemRepository(db)
	exchangeRepo := repo.NewExchangeRepository(db)
	notiRepo := mongorepo.NewNotificationRepository(mongoclient)
	logRepo := mongorepo.NewLogRepository(mongoclient)
	messageRepo := mongorepo.NewMessageRepository(mongoclient)

	defaultRoleID, err := userRepo.GetRoleIDByName("student")
	if err != nil {
		log.Warnw("failed to load default role 'student'", "error", err)
	}

	// --- collaborators ---
	var lineAPI *messaging_api.MessagingApiAPI
	if cfg.LineChannelToken != "" {
		lineAPI, err = messaging_api.NewMessagingApiAPI(cfg.LineChannelToken)
		if err != nil {
			log.Warnw("LINE messaging disabled", "error", err)
		}
	}
	notifier := service.NewNotifier(notiRepo, userRepo, lineAPI, log)

	var uploader *utils.ImageUploader
	if cfg.CloudinaryURL != "" {
		uploader, err = utils.NewImageUploader(cfg.CloudinaryURL, "campusx/items")
		if err != nil {
			log.Warnw("image uploads disabled", "error", err)
		}
	}

	// --- services ---
	authService := service.NewAuthService(userRepo, defaultRoleID)
	itemService := service.NewItemService(itemRepo)
	exchangeService := service.NewExchangeService(exchangeRepo, itemRepo, logRepo, notifier, log)
	chatService := service.NewChatService(exchangeRepo, messageRepo, notifier)
	notiService := service.NewNotificationService(notiRepo)
	adminService := service.NewAdminService(userRepo, itemRepo, logRepo, log)

	// --- handlers ---
	authHandler := httpHandler.NewAuthHandler(authService)
	itemHandler := httpHandler.NewItemHandler(itemService, uploader)
	exchangeHandler := httpHandler.NewExchangeHandler(exchangeService)
	chatHandler := httpHandler.NewChatHandler(chatService)
	notiHandler := httpHandler.NewNotificationHandler(notiService)
	adminHandler := httpHandler.NewAdminHandler(adminService)

	api := app.Group("/api")

	app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(0),
	))

	// --- auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/profile", middleware.AuthRequired(), authHandler.Profile)

	// --- items ---
	items := api.Group("/items")
	items.GET("", itemHandler.Browse)
	items.GET("/my", middleware.AuthRequired(), itemHandler.GetMyItems)
	items.GET("/:id", itemHandler.GetItem)
	items.POST("", middleware.AuthRequired(), itemHandler.CreateItem)
	items.PUT("/:id", middleware.AuthRequired(), itemHandler.UpdateItem)
	items.DELETE("/:id", middleware.AuthRequired(), itemHandler.DeleteItem)

	// --- exchanges ---
	exchanges := api.Group("/exchanges", middleware.AuthRequired())
	exchanges.POST("", exchangeHandler.Create)
	exchanges.GET("/my", exchangeHandler.GetMy)
	exchanges.GET("/inbox", exchangeHandler.GetInbox)
	exchanges.GET("/:id", exchangeHandler.GetDetail)
	exchanges.POST("/:id/respond", exchangeHandler.Respond)
	exchanges.POST("/:id/confirm", exchangeHandler.Confirm)
	exchanges.POST("/:id/cancel", exchangeHandler.Cancel)
	exchanges.GET("/:id/messages", chatHandler.ListMessages)
	exchanges.POST("/:id/messages", chatHandler.SendMessage)

	// --- notifications ---
	notifications := api.Group("/notifications", middleware.AuthRequired())
	notifications.GET("", notiHandler.List)
	notifications.PATCH("/:id/read", notiHandler.MarkRead)

	// --- admin ---
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleAllowed("admin"))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
	admin.PATCH("/items/:id/moderate", adminHandler.ModerateItem)
}
