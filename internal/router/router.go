package router

import (
	"net/http"
	"strings"

	"github.com/gattabara/site/internal/handler"
	"github.com/gattabara/site/internal/logging"
	"github.com/gattabara/site/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options 配置路由所需的外部参数
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURL     string
	Logger        *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	logger := logging.OrNop(opts.Logger)

	r := gin.New()
	r.Use(logging.RequestLogger(logger), gin.Recovery())
	r.MaxMultipartMemory = 64 << 20

	// 配置会话中间件
	secret := opts.SessionSecret
	if strings.TrimSpace(secret) == "" {
		secret = "gattabara-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("gattabara_session", store))

	// 加载内嵌模板
	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/assets", http.FS(view.Static()))
	uploadURL := "/" + strings.Trim(strings.TrimSpace(opts.UploadURL), "/")
	if uploadURL == "/" {
		uploadURL = "/uploads"
	}
	r.Static(uploadURL, opts.UploadDir)

	r.GET("/healthz", api.HealthCheck)
	r.GET("/data/content.json", api.ContentJSON)

	// 公开页面
	r.GET("/", api.ShowHome)
	r.GET("/games", api.ShowGames)
	r.GET("/games/:slug", api.ShowGame)
	r.GET("/projects", api.ShowProjects)
	r.GET("/gg-productions", api.ShowGGProductions)
	r.GET("/about", api.ShowAbout)
	r.GET("/pitch-us", api.ShowPitch)
	r.GET("/pitch-us/form", api.ShowPitchForm)
	r.GET("/contact-us", api.ShowContactUs)
	r.GET("/privacy", api.ShowPolicy("privacy"))
	r.GET("/cookies", api.ShowPolicy("cookies"))
	r.POST("/api/contact", api.SubmitContact)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("", api.ShowEditor)

			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/content", api.GetContent)
				adminAPI.PUT("/content", api.SaveContent)
				adminAPI.POST("/media", api.PickMedia)
				adminAPI.GET("/uploads", api.ListUploads)
				adminAPI.GET("/contact-submissions", api.ListContactSubmissions)
			}
		}
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
