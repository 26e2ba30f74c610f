package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketplace_dev_v1/internal/controller"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/model"
	"marketplace_dev_v1/internal/repository"
	"marketplace_dev_v1/internal/router"
	"marketplace_dev_v1/internal/service"
	"marketplace_dev_v1/internal/task"
	"marketplace_dev_v1/pkg/config"
	"marketplace_dev_v1/pkg/database"
	"marketplace_dev_v1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. JWT 配置（未设置的字段保留内置默认值）
	middleware.ApplyJWTConfig(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)

	// 4. 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal("初始化数据库失败", zap.Error(err))
	}
	log.Info("数据库连接成功")

	// 5. 初始化依赖
	deps := initDependencies(cfg, db, log)

	// 6. 启动定时任务
	initTasks(cfg, deps, log)

	// 7. 初始化路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(log))
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Product,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.Seller,
	)

	// 8. 启动服务
	startServer(cfg, r, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Product     repository.ProductRepository
	Cart        repository.CartRepository
	Favorite    repository.FavoriteRepository
	Order       repository.OrderRepository
	OrderItem   repository.OrderItemRepository
	CheckoutUow *repository.CheckoutUnitOfWork
}

// Services 服务集合
type Services struct {
	Auth    *service.AuthService
	Product *service.ProductService
	Cart    *service.CartService
	Order   *service.OrderService
	Seller  *service.SellerService
	CSV     *service.CSVService
	Storage *service.StorageService
	AI      *service.AIService
}

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Product *controller.ProductController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Seller  *controller.SellerController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.InitDB(
		cfg.Database.DSN(),
		cfg.Server.Mode != "release",
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Product:     repository.NewProductRepository(db),
		Cart:        repository.NewCartRepository(db),
		Favorite:    repository.NewFavoriteRepository(db),
		Order:       repository.NewOrderRepository(db),
		OrderItem:   repository.NewOrderItemRepository(db),
		CheckoutUow: repository.NewCheckoutUnitOfWork(db),
	}

	// -------- 存储 & AI 服务 --------
	storageSvc := initStorageService(cfg, log)
	aiSvc := service.NewAIService(&service.AIConfig{
		ApiKey:    cfg.AI.ApiKey,
		TextModel: cfg.AI.TextModel,
	})

	// -------- 业务服务 --------
	services := &Services{
		Storage: storageSvc,
		AI:      aiSvc,
		CSV:     service.NewCSVService(),
	}
	services.Auth = service.NewAuthService(repos.User, repos.Product)
	services.Product = service.NewProductService(repos.Product, repos.Favorite, storageSvc)
	services.Cart = service.NewCartService(repos.Cart, repos.Product)
	services.Order = service.NewOrderService(repos.CheckoutUow, repos.Order)
	services.Seller = service.NewSellerService(repos.OrderItem)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:    controller.NewAuthController(services.Auth),
		Product: controller.NewProductController(services.Product, services.CSV),
		Cart:    controller.NewCartController(services.Cart),
		Order:   controller.NewOrderController(services.Order),
		Seller:  controller.NewSellerController(services.Seller, services.AI),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务
func initStorageService(cfg *config.Config, log *zap.Logger) *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
	})
	if err != nil {
		log.Warn("存储服务初始化失败，图片上传不可用", zap.Error(err))
		return nil
	}
	return storageSvc
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies, log *zap.Logger) {
	cleanup := task.NewCartCleanupTask(deps.Repos.Cart, log, cfg.Cart.StaleAfter, cfg.Cart.CleanupCron)
	if err := cleanup.Start(); err != nil {
		log.Fatal("启动购物车清理任务失败", zap.Error(err))
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine, log *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务强制关闭", zap.Error(err))
	}

	log.Info("服务已退出")
}
