package main

import (
	"time"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default site content when no content file exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store := service.NewContentStore(service.ContentStoreOptions{
			ContentPath: cfg.ContentPath,
			UploadDir:   cfg.UploadDir,
			UploadURL:   cfg.UploadURLPath,
			Logger:      logger.Named("content"),
		})

		written, err := store.Seed(content.Defaults(time.Now()))
		if err != nil {
			return err
		}
		if written {
			logger.Info("seeded site content", zap.String("path", cfg.ContentPath))
		} else {
			logger.Info("site content already exists, nothing to do", zap.String("path", cfg.ContentPath))
		}
		return nil
	},
}
