package handler

import (
	"errors"
	"net/http"

	"github.com/gattabara/site/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PickMedia 将编辑器选中的文件转换为内联 data URI，文件在保存时才写入磁盘
func (a *API) PickMedia(c *gin.Context) {
	kind, err := service.ParsePickKind(c.PostForm("kind"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file was uploaded")
		return
	}

	// 先按声明的大小快速拒绝
	if file.Size > kind.MaxBytes() {
		respondError(c, http.StatusRequestEntityTooLarge, service.ErrMediaTooLarge.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer src.Close()

	picked, err := service.InlineFromPick(kind, src)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaTooLarge):
			respondError(c, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrMediaTypeInvalid):
			respondError(c, http.StatusUnsupportedMediaType, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to read upload")
		}
		return
	}

	a.logger.Debug("media picked",
		zap.String("kind", string(kind)),
		zap.String("mime", picked.MimeType),
		zap.Int64("bytes", picked.Size),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"dataUrl":  picked.DataURL,
		"mimeType": picked.MimeType,
		"size":     picked.Size,
	})
}
