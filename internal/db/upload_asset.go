package db

import "gorm.io/gorm"

// UploadAsset 记录由内容保存流程落盘的上传文件。
// Path 为内容文档中引用的 URL 路径，例如 /uploads/1700000000000-0.png。
type UploadAsset struct {
	gorm.Model
	Path     string `gorm:"size:255;uniqueIndex;not null"`
	Category string `gorm:"size:50"`
	MimeType string `gorm:"size:100"`
	Size     int64
	Width    int
	Height   int
}

// TableName 返回自定义表名
func (UploadAsset) TableName() string {
	return "upload_assets"
}
