package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gattabara/site/internal/db"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UploadAssetService keeps a ledger of files in the uploads directory that
// were produced by content saves.
type UploadAssetService struct {
	db *gorm.DB
}

// NewUploadAssetService returns a new UploadAssetService instance.
func NewUploadAssetService(gdb *gorm.DB) *UploadAssetService {
	return &UploadAssetService{db: gdb}
}

// Record stores or refreshes the ledger row for an uploaded file. Image
// dimensions are read from the data when the format is decodable.
func (s *UploadAssetService) Record(asset UploadedAsset) error {
	width, height := imageDimensions(asset.MimeType, asset.Data)

	row := db.UploadAsset{
		Path:     strings.TrimSpace(asset.Path),
		Category: asset.Category,
		MimeType: asset.MimeType,
		Size:     int64(len(asset.Data)),
		Width:    width,
		Height:   height,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "path"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"category":   row.Category,
			"mime_type":  row.MimeType,
			"size":       row.Size,
			"width":      row.Width,
			"height":     row.Height,
			"deleted_at": nil,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("record upload asset %s: %w", row.Path, err)
	}
	return nil
}

// Forget removes the ledger row for a deleted upload.
func (s *UploadAssetService) Forget(path string) error {
	if err := s.db.Unscoped().Where("path = ?", strings.TrimSpace(path)).Delete(&db.UploadAsset{}).Error; err != nil {
		return fmt.Errorf("forget upload asset %s: %w", path, err)
	}
	return nil
}

// List returns all recorded uploads, newest first.
func (s *UploadAssetService) List() ([]db.UploadAsset, error) {
	var items []db.UploadAsset
	if err := s.db.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list upload assets: %w", err)
	}
	return items, nil
}

func imageDimensions(mimeType string, data []byte) (int, int) {
	if !strings.HasPrefix(mimeType, "image/") || strings.Contains(mimeType, "svg") {
		return 0, 0
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
