package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"liveops_dev_v1_202608/internal/config"
	"liveops_dev_v1_202608/internal/controller"
	"liveops_dev_v1_202608/internal/middleware"
	"liveops_dev_v1_202608/internal/model"
	"liveops_dev_v1_202608/internal/realtime"
	"liveops_dev_v1_202608/internal/repository"
	"liveops_dev_v1_202608/internal/router"
	"liveops_dev_v1_202608/internal/service"
	"liveops_dev_v1_202608/internal/task"
	"liveops_dev_v1_202608/pkg/database"
	"liveops_dev_v1_202608/pkg/logger"
)

func main() {
	// 1. 读配置、初始化日志
	cfg := config.Load()
	logger.Init(cfg.Server.Mode)
	defer logger.Sync()

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.SecretKey,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动排班看板推送与定时任务
	go deps.Hub.Run()
	deps.Tasks.Start()
	defer deps.Tasks.Stop()

	// 5. 初始化路由
	gin.SetMode(ginMode(cfg.Server.Mode))
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers, deps.Hub)

	// 6. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Hub         *realtime.Hub
	Tasks       *task.TaskManager
}

// Repositories 仓库集合
type Repositories struct {
	Profile     repository.ProfileRepository
	ActivityLog repository.ActivityLogRepository
	Shop        repository.ShopRepository
	Schedule    repository.ScheduleRepository
	Product     repository.ProductRepository
	Feedback    repository.FeedbackRepository
	LiveHub     repository.LiveHubRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	Shop      *service.ShopService
	Translate *service.TranslationService
	Deep      *service.DeepTranslator
	Localize  *service.LocalizeService
	AI        *service.AIService
	Product   *service.ProductService
	Schedule  *service.ScheduleService
	Feedback  *service.FeedbackService
	LiveHub   *service.LiveHubService
	Marketing *service.MarketingService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN, cfg.Server.Mode == "debug",
		// Account
		&model.Profile{}, &model.ActivityLog{},
		// Shop & Schedule
		&model.Shop{}, &model.ScheduleEntry{},
		// Product
		&model.Product{},
		// Feedback & LiveHub
		&model.Feedback{}, &model.LiveHubContent{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 基础服务 --------
	translateSvc := service.NewTranslationService(&cfg.Translate)
	deepTranslator := service.NewDeepTranslator(translateSvc)
	localizeSvc := service.NewLocalizeService(deepTranslator)
	storageProvider := initStorage(cfg)
	hub := realtime.NewHub()

	// -------- 业务服务 --------
	services := &Services{
		Translate: translateSvc,
		Deep:      deepTranslator,
		Localize:  localizeSvc,
	}
	services.Auth = service.NewAuthService(repos.Profile, repos.ActivityLog, &cfg.Admin)
	services.Shop = service.NewShopService(repos.Shop)
	services.AI = service.NewAIService(&cfg.Gemini, repos.ActivityLog)
	services.Product = service.NewProductService(repos.Product, translateSvc, storageProvider)
	services.Schedule = service.NewScheduleService(repos.Schedule, repos.Shop, repos.Profile, hub)
	services.Feedback = service.NewFeedbackService(repos.Feedback, repos.Profile)
	services.LiveHub = service.NewLiveHubService(repos.LiveHub)
	services.Marketing = service.NewMarketingService(repos.Profile, repos.ActivityLog, service.NewSMTPSender(&cfg.SMTP))

	// -------- Controller 层 --------
	controllers := initControllers(services, repos)

	// -------- 定时任务 --------
	tasks := task.NewTaskManager(&task.TaskManagerDeps{
		ProductRepo: repos.Product,
		Translator:  translateSvc,
	})

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Hub:         hub,
		Tasks:       tasks,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profile:     repository.NewProfileRepository(db),
		ActivityLog: repository.NewActivityLogRepository(db),
		Shop:        repository.NewShopRepository(db),
		Schedule:    repository.NewScheduleRepository(db),
		Product:     repository.NewProductRepository(db),
		Feedback:    repository.NewFeedbackRepository(db),
		LiveHub:     repository.NewLiveHubRepository(db),
	}
}

// initStorage 初始化对象存储
func initStorage(cfg *config.Config) service.StorageProvider {
	provider, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return provider
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, repos *Repositories) *router.Controllers {
	return &router.Controllers{
		Auth:      controller.NewAuthController(svc.Auth),
		User:      controller.NewUserController(svc.Auth, repos.ActivityLog),
		Translate: controller.NewTranslateController(svc.Translate, svc.Deep, svc.Localize),
		AI:        controller.NewAIController(svc.AI),
		Product:   controller.NewProductController(svc.Product, repos.ActivityLog),
		Schedule:  controller.NewScheduleController(svc.Schedule),
		Feedback:  controller.NewFeedbackController(svc.Feedback),
		LiveHub:   controller.NewLiveHubController(svc.LiveHub),
		Shop:      controller.NewShopController(svc.Shop),
		Marketing: controller.NewMarketingController(svc.Marketing),
	}
}

// ==================== 服务启动 ====================

func ginMode(mode string) string {
	if mode == "release" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
