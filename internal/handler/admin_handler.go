package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionAdminKey = "admin"

	// 整份文档连同内联的图片与视频一起提交
	maxContentBodyBytes = 512 << 20
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if isAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"title": "Admin Login",
	})
}

// Login 校验共享口令并写入会话
func (a *API) Login(c *gin.Context) {
	password := c.PostForm("password")

	if err := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)); err != nil {
		a.logger.Info("admin login rejected", zap.String("ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"title": "Admin Login",
			"error": "Incorrect passphrase",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAdminKey, true)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
			"title": "Admin Login",
			"error": "Failed to save session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Logout 处理登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 是一个简单的认证中间件；后台 API 返回 401，页面跳转到登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api") {
				respondError(c, http.StatusUnauthorized, "unauthorized")
			} else {
				c.Redirect(http.StatusFound, "/admin/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	ok, _ := session.Get(sessionAdminKey).(bool)
	return ok
}

// ShowEditor 渲染后台编辑器，草稿由浏览器持有，保存时整份提交
func (a *API) ShowEditor(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_editor.html", gin.H{
		"title": "Site Editor",
		"limits": gin.H{
			"image": service.PickImage.MaxBytes(),
			"logo":  service.PickLogo.MaxBytes(),
			"video": service.PickVideo.MaxBytes(),
		},
	})
}

// GetContent 返回补全所有字段的草稿以及每个列表的空白条目；
// 缺失的部分以默认内容起步
func (a *API) GetContent(c *gin.Context) {
	doc := a.store.Load().WithDefaults(a.now())
	c.JSON(http.StatusOK, gin.H{
		"content":   content.EditorDraft(doc),
		"templates": content.EditorTemplates(),
	})
}

// SaveContent replaces the whole document.
func (a *API) SaveContent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContentBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "document is too large")
			return
		}
		respondError(c, http.StatusBadRequest, "failed to read document")
		return
	}

	doc, err := content.Parse(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := a.store.Save(doc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidDataURI) || errors.Is(err, service.ErrMediaTypeInvalid) {
			status = http.StatusBadRequest
		}
		respondError(c, status, err.Error())
		return
	}

	a.logger.Info("site content saved", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"success": true, "content": content.EditorDraft(saved)})
}

// ListUploads 返回内容保存时写入的上传文件记录
func (a *API) ListUploads(c *gin.Context) {
	if a.assets == nil {
		c.JSON(http.StatusOK, gin.H{"uploads": []interface{}{}})
		return
	}
	items, err := a.assets.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list uploads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": items})
}

// ListContactSubmissions 返回最近的联系表单记录
func (a *API) ListContactSubmissions(c *gin.Context) {
	if a.contacts == nil {
		c.JSON(http.StatusOK, gin.H{"submissions": []interface{}{}})
		return
	}
	items, err := a.contacts.ListRecent(parseLimitQuery(c, 50, 500))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": items})
}
