package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gattabara/site/internal/db"
	"github.com/gattabara/site/internal/handler"
	"github.com/gattabara/site/internal/router"
	"github.com/gattabara/site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the public site and the admin editor",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	assets := service.NewUploadAssetService(db.DB)
	store := service.NewContentStore(service.ContentStoreOptions{
		ContentPath: cfg.ContentPath,
		UploadDir:   cfg.UploadDir,
		UploadURL:   cfg.UploadURLPath,
		Logger:      logger.Named("content"),
		Assets:      assets,
	})

	api, err := handler.NewAPI(handler.Options{
		DB:            db.DB,
		Store:         store,
		Assets:        assets,
		Logger:        logger.Named("http"),
		AdminPassword: cfg.AdminPassword,
		SiteBaseURL:   cfg.SiteBaseURL,
	})
	if err != nil {
		return err
	}

	r, err := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURL:     cfg.UploadURLPath,
		Logger:        logger.Named("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr), zap.String("content", cfg.ContentPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// 收到信号或监听失败时关闭服务
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
