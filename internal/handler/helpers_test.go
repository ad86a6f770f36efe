package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/db"
	"github.com/gattabara/site/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "open-sesame"

type stubHTMLRender struct {
	last *stubHTMLInstance
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.last = &stubHTMLInstance{name: name, data: data}
	return r.last
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func (r *stubHTMLRender) lastData(t *testing.T) gin.H {
	t.Helper()
	if r.last == nil {
		t.Fatal("expected a template to be rendered")
	}
	data, ok := r.last.data.(gin.H)
	if !ok {
		t.Fatalf("expected gin.H template data, got %T", r.last.data)
	}
	return data
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

type handlerFixture struct {
	api       *API
	store     *service.ContentStore
	uploadDir string
	html      *stubHTMLRender
	router    *gin.Engine
}

func newHandlerFixture(t *testing.T) handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	root := t.TempDir()
	uploadDir := filepath.Join(root, "uploads")
	assets := service.NewUploadAssetService(gdb)
	store := service.NewContentStore(service.ContentStoreOptions{
		ContentPath: filepath.Join(root, "content.json"),
		UploadDir:   uploadDir,
		UploadURL:   "/uploads",
		Assets:      assets,
	})

	api, err := NewAPI(Options{DB: gdb, Store: store, Assets: assets, AdminPassword: testPassword})
	if err != nil {
		t.Fatalf("NewAPI returned error: %v", err)
	}

	html := &stubHTMLRender{}
	router := gin.New()
	router.HTMLRender = html
	router.Use(sessions.Sessions("gattabara_session", cookie.NewStore([]byte("test-secret"))))

	return handlerFixture{api: api, store: store, uploadDir: uploadDir, html: html, router: router}
}

func (fx handlerFixture) seed(t *testing.T, doc *content.SiteContent) {
	t.Helper()
	if _, err := fx.store.Save(doc); err != nil {
		t.Fatalf("failed to seed content: %v", err)
	}
}
