package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldserve/config"
	"fieldserve/database"
	adminRepo "fieldserve/database/repository/adminrepo"
	callRepo "fieldserve/database/repository/call"
	paymentRepo "fieldserve/database/repository/payment"
	serviceformRepo "fieldserve/database/repository/serviceform"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/handlers"
	"fieldserve/middleware"
	"fieldserve/routes"
	"fieldserve/services/auth"
	"fieldserve/services/call"
	"fieldserve/services/notification"
	"fieldserve/services/payment"
	"fieldserve/services/reconciliation"
	"fieldserve/services/serviceform"
	"fieldserve/services/technician"
	"fieldserve/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	admins := adminRepo.NewMongoAdminRepo()
	techs := technicianRepo.NewMongoTechnicianRepo()
	calls := callRepo.NewMongoCallRepo()
	payments := paymentRepo.NewMongoPaymentRepo()
	forms := serviceformRepo.NewMongoServiceFormRepo()

	if err := admins.EnsureSeedAdmin(config.AppConfig.AdminUsername, config.AppConfig.AdminPassword); err != nil {
		logger.Sugar().Fatalf("main: failed to seed admin account: %v", err)
	}

	// services.
	authService := &auth.DefaultAuthService{
		Admins:      admins,
		Technicians: techs,
	}
	notificationService := &notification.DefaultNotificationService{
		Techs: techs,
	}
	callService := &call.DefaultCallService{
		Repo:     calls,
		Techs:    techs,
		Notifier: notificationService,
	}
	technicianService := &technician.DefaultTechnicianService{
		Repo: techs,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:  payments,
		Techs: techs,
	}
	serviceFormService := &serviceform.DefaultServiceFormService{
		Repo:  forms,
		Techs: techs,
	}
	reconciliationService := &reconciliation.DefaultReconciliationService{
		Calls:       calls,
		Payments:    payments,
		Technicians: techs,
		Cache:       utils.GetCacheClient(),
	}

	handlerBundle := &handlers.HandlerBundle{
		Auth:           handlers.NewAuthHandler(authService),
		Calls:          handlers.NewCallHandler(callService),
		Technicians:    handlers.NewTechnicianHandler(technicianService, storageService),
		Payments:       handlers.NewPaymentHandler(paymentService),
		Forms:          handlers.NewServiceFormHandler(serviceFormService),
		Reconciliation: handlers.NewReconciliationHandler(reconciliationService),
		Storage:        handlers.NewStorageHandler(storageService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
