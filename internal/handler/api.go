package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/logging"
	"github.com/gattabara/site/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	store    *service.ContentStore
	contacts *service.ContactService
	assets   *service.UploadAssetService
	logger   *zap.Logger
	passHash []byte
	baseURL  string
	now      func() time.Time
}

// Options configures NewAPI.
type Options struct {
	DB            *gorm.DB
	Store         *service.ContentStore
	Assets        *service.UploadAssetService
	Logger        *zap.Logger
	AdminPassword string
	SiteBaseURL   string
}

// NewAPI constructs a handler set with shared services. The admin
// passphrase is hashed once here; requests only ever compare against the hash.
func NewAPI(opts Options) (*API, error) {
	if opts.Store == nil {
		return nil, errors.New("handler: content store is required")
	}
	password := strings.TrimSpace(opts.AdminPassword)
	if password == "" {
		return nil, errors.New("handler: admin password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	logger := logging.OrNop(opts.Logger)
	assets := opts.Assets
	if assets == nil && opts.DB != nil {
		assets = service.NewUploadAssetService(opts.DB)
	}

	var contacts *service.ContactService
	if opts.DB != nil {
		contacts = service.NewContactService(opts.DB, logger.Named("contact"))
	}

	return &API{
		db:       opts.DB,
		store:    opts.Store,
		contacts: contacts,
		assets:   assets,
		logger:   logger,
		passHash: hash,
		baseURL:  strings.TrimRight(strings.TrimSpace(opts.SiteBaseURL), "/"),
		now:      time.Now,
	}, nil
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// renderHTML 为所有公开页面附加导航、页脚与公司信息。
func (a *API) renderHTML(c *gin.Context, status int, template string, doc *content.SiteContent, data gin.H) {
	home := doc.HomeOrDefault()
	contact := doc.ContactOrDefault()

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		var navItems []content.NavItem
		if home.Header != nil {
			navItems = home.Header.NavItems
		}
		payload["site"] = gin.H{
			"navItems":  navItems,
			"bottomBox": home.BottomBox,
			"contact":   contact,
			"baseUrl":   a.baseURL,
			"path":      c.Request.URL.Path,
			"year":      a.now().Year(),
		}
	}
	if _, exists := payload["title"]; !exists {
		payload["title"] = "Gattabara Games"
	}

	c.HTML(status, template, payload)
}
