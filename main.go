package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ChurchPortal/controllers"
	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/middlewares"
	"github.com/ChurchPortal/services"
)

func init() {
	envErr := initializers.LoadEnv()
	initializers.InitLogger(os.Getenv("APP_ENV"))
	if envErr != nil {
		initializers.Log.Warnw("using process environment only", "error", envErr)
	}
	initializers.LoadConfig()
	initializers.ConnectDB()
	initializers.ConnectSessions()
	services.InitEmailService()
}

func main() {
	defer initializers.SyncLogger()

	if initializers.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + initializers.Config.Port,
		Handler:           newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		initializers.Log.Infow("server listening", "addr", srv.Addr, "env", initializers.Config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			initializers.Log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	initializers.Log.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		initializers.Log.Errorw("server forced to shutdown", "error", err)
	}
}

func newRouter() *gin.Engine {
	cfg := initializers.Config
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.Metrics())
	router.Use(middlewares.CORS(cfg.CORSOrigins))
	router.Use(middlewares.SecurityHeaders(cfg.IsProduction()))

	key := middlewares.ClientKey
	strict := middlewares.RateLimitMiddleware("auth", 2, 5, key)

	router.GET("/ping", controllers.Ping)
	router.GET("/healthz", controllers.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/register", strict, controllers.Register)
		auth.POST("/login", strict, controllers.Login)
		auth.POST("/verify-email", strict, controllers.VerifyEmail)
		auth.POST("/forgot-password", strict, controllers.ForgotPassword)
		auth.POST("/reset-password", strict, controllers.ResetPassword)

		auth.DELETE("/logout", middlewares.CheckAuth, controllers.Logout)
		auth.GET("/me", middlewares.CheckAuth, controllers.GetCurrentUser)
	}

	admin := router.Group("/")
	admin.Use(middlewares.CheckAuth)
	admin.Use(middlewares.CheckAdmin)
	admin.Use(middlewares.RateLimitMiddleware("api", rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, key))
	{
		admin.GET("/member", controllers.GetMembers)
		admin.POST("/member", controllers.CreateMember)
		admin.GET("/member/:id", controllers.GetMember)
		admin.PATCH("/member/:id", controllers.UpdateMember)
		admin.DELETE("/member/:id", controllers.DeleteMember)

		admin.GET("/attendance", controllers.GetAttendanceRecords)
		admin.POST("/attendance", controllers.CreateAttendanceRecord)
		admin.GET("/attendance/:id", controllers.GetAttendanceRecord)
		admin.PATCH("/attendance/:id/checkout", controllers.CheckOutAttendanceRecord)
		admin.DELETE("/attendance/:id", controllers.DeleteAttendanceRecord)

		admin.GET("/services", controllers.GetServices)
		admin.POST("/services", controllers.CreateService)
		admin.GET("/services/:id", controllers.GetService)
		admin.GET("/services/:id/attendance", controllers.GetServiceAttendance)
		admin.DELETE("/services/:id", controllers.DeleteService)

		admin.GET("/churchday", controllers.GetChurchdays)
		admin.POST("/churchday", controllers.CreateChurchday)
		admin.GET("/churchday/:id", controllers.GetChurchday)
		admin.GET("/churchday/:id/attendance", controllers.GetChurchdayAttendance)
		admin.DELETE("/churchday/:id", controllers.DeleteChurchday)

		admin.GET("/stats", controllers.GetStats)
		admin.POST("/admin/email/test", controllers.TestEmailService)
	}

	return router
}
