package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpcontext "github.com/avolkov/calcpad-server/internal/api/http/context"
	"github.com/avolkov/calcpad-server/internal/api/http/router"
	httpserver "github.com/avolkov/calcpad-server/internal/api/http/server"
	"github.com/avolkov/calcpad-server/internal/calc"
	"github.com/avolkov/calcpad-server/internal/config"
	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
	"github.com/avolkov/calcpad-server/internal/repository/postgres"
	"github.com/avolkov/calcpad-server/internal/server"
	"github.com/avolkov/calcpad-server/internal/service"
	"github.com/avolkov/calcpad-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := loadDotEnv(); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	calculationRepo := postgres.NewCalculationRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := httpcontext.NewManager()

	authService := service.NewAuth(userRepo, tokenManager, logger)
	calculationService := service.NewCalculation(calculationRepo, calc.NewDispatcher(), calc.NewFactory(), logger)

	httpServer := registerHTTPServer(logger, authService, calculationService, tokenManager, ctxMgr, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	calculationService *service.Calculation,
	tokenManager model.TokenManager,
	ctxMgr model.ContextManager,
	addr string,
) *httpserver.HTTPServer {
	r := router.New(authService, calculationService, tokenManager, ctxMgr, logger)
	h := r.Register()

	return httpserver.NewHTTPServer(h, addr)
}
