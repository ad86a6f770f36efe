package db

import "gorm.io/gorm"

// ContactSubmission 保存前台 Pitch / Contact 表单提交的内容。
// 站点不负责投递，仅供后台查看。
type ContactSubmission struct {
	gorm.Model
	Reference string `gorm:"size:36;uniqueIndex;not null"`
	Name      string `gorm:"size:120;not null"`
	Email     string `gorm:"size:255;not null"`
	Message   string `gorm:"type:text"`
	RemoteIP  string `gorm:"size:64"`
}

// TableName 返回自定义表名
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
