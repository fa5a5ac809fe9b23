package app

import (
	"net/http"

	"github.com/Tkay6677/Ndu-attendance/internal/middleware"
	"github.com/Tkay6677/Ndu-attendance/internal/modules/attendance"
	"github.com/Tkay6677/Ndu-attendance/internal/modules/auth"
	"github.com/Tkay6677/Ndu-attendance/internal/modules/session"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/qrtoken"
	pkgredis "github.com/Tkay6677/Ndu-attendance/internal/pkg/redis"
	"github.com/Tkay6677/Ndu-attendance/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(rc.Raw()))

	api := r.Group("/api/v1")

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	codec := qrtoken.New(a.cfg.JWTSecret, a.cfg.QRTokenTTL())

	authSvc := auth.NewService(db)
	sessionSvc := session.NewService(db)
	ledger := attendance.NewService(db)
	redeemer := attendance.NewRedeemer(codec, sessionSvc, ledger)

	auth.NewHandler(authSvc, db).RegisterRoutes(api, authMW)
	session.NewHandler(sessionSvc, codec, a.cfg, db).RegisterRoutes(api, authMW)
	attendance.NewHandler(redeemer, ledger, sessionSvc, db).RegisterRoutes(api, authMW)
}
