package router

import (
	"Aurora_Admin/internal/handler"
	"Aurora_Admin/internal/middleware"
	"Aurora_Admin/internal/pkg"
	"Aurora_Admin/internal/repository/mysql"
	rds "Aurora_Admin/internal/repository/redis"
	"Aurora_Admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRouter 组装仓储、服务和路由；依赖全部从入口处传入
func InitRouter(db *gorm.DB, rdb *redis.Client, emailCfg pkg.SMTPConfig, audit *service.AuditService) *gin.Engine {
	r := gin.Default()

	genRepo := &mysql.GenerationRepository{DB: db}
	userRepo := &mysql.UserRepository{DB: db}
	adminRepo := &mysql.AdminRepository{DB: db}
	flagRepo := &mysql.FlagRepository{DB: db}
	blockRepo := &mysql.BlocklistRepository{DB: db}
	broadcastRepo := &mysql.BroadcastRepository{DB: db}

	sessions := &rds.AdminSessionRepository{RDB: rdb}
	flagCache := &rds.FlagCacheRepository{RDB: rdb}
	blockCache := &rds.BlocklistCacheRepository{RDB: rdb}

	genSvc := service.NewGenerationService(genRepo, userRepo)
	scoreSvc := service.NewScoreService(genRepo, audit)
	userSvc := service.NewUserService(userRepo, audit)
	authSvc := service.NewAuthService(adminRepo, sessions)
	flagSvc := service.NewFlagService(flagRepo, flagCache, audit)
	blockSvc := service.NewBlocklistService(blockRepo, blockCache, audit)
	broadcastSvc := service.NewBroadcastService(broadcastRepo, userRepo, emailCfg, audit)

	auth := handler.NewAuthHandler(authSvc)
	generation := handler.NewGenerationHandler(genSvc, scoreSvc)
	artstation := handler.NewArtStationHandler(genSvc, scoreSvc)
	user := handler.NewUserHandler(userSvc)
	flag := handler.NewFlagHandler(flagSvc)
	blocklist := handler.NewBlocklistHandler(blockSvc)
	broadcast := handler.NewBroadcastHandler(broadcastSvc)
	auditH := handler.NewAuditHandler(audit)

	// 登录相关接口
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", auth.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", auth.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware(sessions))
	{
		authGroup.POST("/logout", auth.Logout)

		// 生成内容审核
		authGroup.GET("/generations", generation.List)
		authGroup.PUT("/generations/:id/score", generation.Score)
		authGroup.DELETE("/generations/:id/score", generation.Unscore)
		authGroup.POST("/generations/bulk-score", generation.BulkScore)

		// ArtStation 精选流
		authGroup.GET("/artstation", artstation.List)
		authGroup.PUT("/artstation/:id/score", artstation.Score)
		authGroup.DELETE("/artstation/:id", artstation.Remove)
		authGroup.POST("/artstation/bulk-remove", artstation.BulkRemove)

		// 用户封控
		authGroup.GET("/users", user.List)
		authGroup.GET("/users/:uid", user.Get)
		authGroup.POST("/users/:uid/suspend", user.Suspend)
		authGroup.POST("/users/:uid/unsuspend", user.Unsuspend)
		authGroup.POST("/users/:uid/ban", user.Ban)
		authGroup.POST("/users/:uid/unban", user.Unban)
		authGroup.POST("/users/:uid/warn", user.Warn)
		authGroup.POST("/users/:uid/credits", user.AdjustCredits)

		// 功能开关
		authGroup.GET("/flags", flag.List)
		authGroup.PUT("/flags/:key", flag.Upsert)
		authGroup.DELETE("/flags/:key", flag.Delete)

		// 黑名单
		authGroup.GET("/blocklist/ips", blocklist.ListIPs)
		authGroup.POST("/blocklist/ips", blocklist.AddIP)
		authGroup.DELETE("/blocklist/ips/:ip", blocklist.RemoveIP)
		authGroup.GET("/blocklist/devices", blocklist.ListDevices)
		authGroup.POST("/blocklist/devices", blocklist.AddDevice)
		authGroup.DELETE("/blocklist/devices/:deviceId", blocklist.RemoveDevice)

		// 群发
		authGroup.POST("/broadcasts", broadcast.Send)
		authGroup.GET("/broadcasts", broadcast.List)

		// 审计
		authGroup.GET("/audit-logs", auditH.List)
	}

	return r
}
