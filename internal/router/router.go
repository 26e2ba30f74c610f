package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace_dev_v1/internal/controller"
	"marketplace_dev_v1/internal/middleware"
	"marketplace_dev_v1/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	productCtrl *controller.ProductController,
	cartCtrl *controller.CartController,
	orderCtrl *controller.OrderController,
	sellerCtrl *controller.SellerController) {
	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtrl.Register)
			auth.POST("/login", authCtrl.Login)

			me := auth.Group("/me", middleware.JWTAuth(), middleware.AuditContext())
			{
				me.GET("", authCtrl.Profile)
				// 仅 CLIENT，硬删除
				me.DELETE("", authCtrl.DeleteAccount)
				// 仅 SELLER，停用并隐藏商品
				me.POST("/deactivate", authCtrl.DeactivateAccount)
			}
		}

		// product 商品组
		products := api.Group("/products")
		{
			// 游客可浏览，登录后附带收藏状态
			products.GET("", middleware.OptionalAuth(), productCtrl.ListProducts)

			// 卖家维护（先注册静态路由，避免与 :id 冲突）
			sellerOnly := products.Group("", middleware.JWTAuth(), middleware.RequireRole(model.RoleSeller), middleware.AuditContext())
			{
				sellerOnly.POST("", productCtrl.CreateProduct)
				sellerOnly.GET("/mine", productCtrl.ListMyProducts)
				sellerOnly.POST("/bulk", productCtrl.BulkCreate)
				sellerOnly.POST("/import", productCtrl.ImportCSVFile)
				sellerOnly.POST("/import-url", productCtrl.ImportCSVURL)
				sellerOnly.PUT("/:id", productCtrl.UpdateProduct)
				sellerOnly.DELETE("/:id", productCtrl.DeleteProduct)
				sellerOnly.POST("/:id/image", productCtrl.UploadImage)
			}

			products.GET("/:id", middleware.OptionalAuth(), productCtrl.GetProduct)

			// 收藏（登录用户）
			fav := products.Group("", middleware.JWTAuth(), middleware.AuditContext())
			{
				fav.POST("/:id/favorite", productCtrl.AddFavorite)
				fav.DELETE("/:id/favorite", productCtrl.RemoveFavorite)
			}
		}

		api.GET("/favorites", middleware.JWTAuth(), middleware.AuditContext(), productCtrl.ListFavorites)

		// cart 购物车组（仅买家）
		cart := api.Group("/cart", middleware.JWTAuth(), middleware.RequireRole(model.RoleClient), middleware.AuditContext())
		{
			cart.GET("", cartCtrl.GetCart)
			cart.POST("", cartCtrl.AddItem)
			cart.DELETE("", cartCtrl.ClearCart)
			cart.PUT("/:product_id", cartCtrl.UpdateItem)
			cart.DELETE("/:product_id", cartCtrl.RemoveItem)
		}

		// order 订单组（仅买家）
		orders := api.Group("/orders", middleware.JWTAuth(), middleware.RequireRole(model.RoleClient), middleware.AuditContext())
		{
			orders.POST("/checkout", orderCtrl.Checkout)
			orders.GET("", orderCtrl.ListOrders)
			orders.GET("/:id", orderCtrl.GetOrder)
		}

		// seller 卖家组
		seller := api.Group("/seller", middleware.JWTAuth(), middleware.RequireRole(model.RoleSeller), middleware.AuditContext())
		{
			seller.GET("/dashboard", sellerCtrl.Dashboard)
			seller.POST("/describe", sellerCtrl.Describe)
		}
	}
}
