package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyhub/recy-backend/internal/config"
	"github.com/recyhub/recy-backend/internal/http/handlers"
	"github.com/recyhub/recy-backend/internal/http/middleware"
	"github.com/recyhub/recy-backend/internal/interface/http/handler"
)

// Handlers собирает все хэндлеры, которые монтирует роутер.
type Handlers struct {
	Health   *handlers.HealthHandler
	WS       *handlers.WSHandler
	Seed     *handlers.SeedHandler
	Surplus  *handlers.SurplusHandler
	Static   *handlers.StaticHandler
	Resource *handler.ResourceHandler
	Request  *handler.RequestHandler
	Chat     *handler.ChatHandler
	Product  *handler.ProductHandler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS("/uploads", http.Dir(cfg.UploadDir))

	api := r.Group("/api")
	api.GET("/ws", h.WS.Handle)

	if h.Seed != nil && cfg.IsDevelopment() {
		api.POST("/seed", h.Seed.Seed)
	}

	// Ресурсы
	api.POST("/resources", h.Resource.CreateResource)
	api.GET("/resources", h.Resource.ListResources)
	api.GET("/resources/near", h.Resource.ListResourcesNear)
	api.GET("/resources/:id", middleware.IDValidator("id"), h.Resource.GetResource)
	api.POST("/resources/:id/complete", middleware.IDValidator("id"), h.Resource.CompleteResource)
	api.GET("/resources/:id/impact", middleware.IDValidator("id"), h.Resource.GetImpact)

	// Заявки
	api.POST("/requests", h.Request.CreateRequest)
	api.PATCH("/requests/:id/status", middleware.IDValidator("id"), h.Request.UpdateStatus)
	api.GET("/donors/:email/requests", h.Request.ListForDonor)
	api.GET("/donors/:email/impact", h.Request.DonorImpact)
	api.GET("/upcyclers/:email/requests", h.Request.ListForUpcycler)
	api.GET("/upcyclers/:email/products", h.Product.ListByUpcycler)

	// Чаты
	messageLimit := middleware.RateLimitMiddleware("messages", cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/chats", h.Chat.CreateChat)
	api.GET("/chats", h.Chat.ListChats)
	api.GET("/chats/:id", middleware.IDValidator("id"), h.Chat.GetChat)
	api.POST("/chats/:id/messages", messageLimit, middleware.IDValidator("id"), h.Chat.PostMessage)
	api.PATCH("/chats/:id/messages/:messageId/status", middleware.IDValidator("id", "messageId"), h.Chat.UpdateMessageStatus)

	// Изделия и оценки
	api.POST("/products", h.Product.CreateProduct)
	api.GET("/products", h.Product.ListProducts)
	api.POST("/ratings", h.Product.Rate)
	api.GET("/partners/:email/ratings", h.Product.ListRatings)

	// Излишки
	if h.Surplus != nil {
		surplusLimit := middleware.RateLimitMiddleware("surplus", cfg.RateLimitLimit, cfg.RateLimitPeriod)
		api.POST("/surplus", surplusLimit, h.Surplus.Create)
		api.GET("/surplus", h.Surplus.List)
	}

	if h.Static != nil {
		r.NoRoute(h.Static.Serve)
	}

	return r
}
