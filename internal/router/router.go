package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"liveops_dev_v1_202608/internal/controller"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/realtime"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth      *controller.AuthController
	User      *controller.UserController
	Translate *controller.TranslateController
	AI        *controller.AIController
	Product   *controller.ProductController
	Schedule  *controller.ScheduleController
	Feedback  *controller.FeedbackController
	LiveHub   *controller.LiveHubController
	Shop      *controller.ShopController
	Marketing *controller.MarketingController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctrls *Controllers, hub *realtime.Hub) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 语言解析对全部 API 生效
	r.Use(middleware.Locale())

	// 3. 排班看板 WebSocket，按 shop_id 订阅
	r.GET("/ws/schedule", realtime.ServeWS(hub))

	// 4. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.Auth.Register)
			auth.POST("/login", ctrls.Auth.Login)
			auth.POST("/refresh", ctrls.Auth.Refresh)
			auth.GET("/me", middleware.JWTAuth(), ctrls.Auth.Me)
		}

		// translate 翻译组，未登录也可用；带令牌时识别身份
		translate := api.Group("/translate", middleware.OptionalAuth())
		{
			translate.POST("/text", ctrls.Translate.TranslateText)
			translate.POST("/deep", ctrls.Translate.DeepTranslate)
			translate.POST("/bundle", ctrls.Translate.LocalizeBundle)
		}

		// 以下全部需要登录
		authed := api.Group("", middleware.JWTAuth())

		// ai 文案生成组
		ai := authed.Group("/ai")
		{
			ai.POST("/generate",
				middleware.OpRateLimit(middleware.OpTypeAIGenerate, 0),
				ctrls.AI.Generate)
			ai.POST("/batch-translate",
				middleware.OpRateLimit(middleware.OpTypeAIGenerate, 0),
				ctrls.AI.BatchTranslate)
		}

		// product 商品组
		products := authed.Group("/products")
		{
			products.GET("", ctrls.Product.GetProducts)
			products.GET("/:id", ctrls.Product.GetProduct)
			products.GET("/sku/:sku", ctrls.Product.GetProductBySKU)

			admin := products.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("", ctrls.Product.CreateProduct)
				admin.PUT("/:id/field", ctrls.Product.UpdateProductField)
				admin.DELETE("/:id", ctrls.Product.DeleteProduct)
				admin.POST("/import",
					middleware.OpRateLimit(middleware.OpTypeProductImport, 0),
					ctrls.Product.ImportProducts)
				admin.POST("/:id/images", ctrls.Product.UploadImage)
				admin.DELETE("/:id/images/:index", ctrls.Product.DeletePatternImage)
				admin.DELETE("/:id/main-image", ctrls.Product.ClearMainImage)
			}
		}

		// schedule 排班组
		schedules := authed.Group("/schedules")
		{
			schedules.GET("/week", ctrls.Schedule.Week)
			schedules.GET("/mine", ctrls.Schedule.MyWeek)
			schedules.GET("/export", ctrls.Schedule.ExportWeek)
			schedules.POST("/report", ctrls.Schedule.Report)

			admin := schedules.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("/assign", ctrls.Schedule.Assign)
				admin.POST("/unassign", ctrls.Schedule.Unassign)
			}
		}

		// feedback 反馈组
		feedbacks := authed.Group("/feedbacks")
		{
			feedbacks.POST("", ctrls.Feedback.CreateFeedback)
			feedbacks.GET("", ctrls.Feedback.ListFeedbacks)

			admin := feedbacks.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("/:id/reply", ctrls.Feedback.ReplyFeedback)
				admin.DELETE("/:id", ctrls.Feedback.DeleteFeedback)
			}
		}

		// livehub 直播中心组
		livehub := authed.Group("/livehub")
		{
			livehub.GET("/:category", ctrls.LiveHub.ListContents)

			admin := livehub.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("", ctrls.LiveHub.CreateContent)
				admin.DELETE("/id/:id", ctrls.LiveHub.DeleteContent)
			}
		}

		// shop 店铺组
		shops := authed.Group("/shops")
		{
			shops.GET("", ctrls.Shop.ListShops)
			shops.GET("/:id", ctrls.Shop.GetShop)

			admin := shops.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.POST("", ctrls.Shop.CreateShop)
				admin.PUT("/:id", ctrls.Shop.UpdateShop)
				admin.DELETE("/:id", ctrls.Shop.DeleteShop)
			}
		}

		// user 用户管理组
		users := authed.Group("/users")
		{
			users.GET("/anchors", ctrls.User.ListAnchors)

			admin := users.Group("", middleware.RequireRole(model.RoleAdmin))
			{
				admin.GET("", ctrls.User.ListProfiles)
				admin.GET("/activity", ctrls.User.ListActivity)
				admin.POST("/fix-usernames", ctrls.User.FixUsernames)
			}
		}

		// marketing 营销组
		marketing := authed.Group("/marketing", middleware.RequireRole(model.RoleAdmin))
		{
			marketing.POST("/bulk-email",
				middleware.OpRateLimit(middleware.OpTypeBulkEmail, 0),
				ctrls.Marketing.SendBulkEmail)
		}
	}
}
