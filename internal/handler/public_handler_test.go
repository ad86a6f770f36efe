package handler

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gattabara/site/internal/content"
	"github.com/gin-gonic/gin"
)

func (fx handlerFixture) withPublicRoutes() handlerFixture {
	fx.router.GET("/data/content.json", fx.api.ContentJSON)
	fx.router.GET("/", fx.api.ShowHome)
	fx.router.GET("/games", fx.api.ShowGames)
	fx.router.GET("/games/:slug", fx.api.ShowGame)
	fx.router.GET("/projects", fx.api.ShowProjects)
	fx.router.GET("/gg-productions", fx.api.ShowGGProductions)
	fx.router.GET("/about", fx.api.ShowAbout)
	fx.router.GET("/contact-us", fx.api.ShowContactUs)
	fx.router.GET("/privacy", fx.api.ShowPolicy("privacy"))
	fx.router.GET("/cookies", fx.api.ShowPolicy("cookies"))
	fx.router.POST("/api/contact", fx.api.SubmitContact)
	fx.router.GET("/healthz", fx.api.HealthCheck)
	return fx
}

func (fx handlerFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return fx.do(httptest.NewRequest(http.MethodGet, target, nil), nil)
}

func TestContentJSONServesEmptyObjectWhenMissing(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()

	rr := fx.get(t, "/data/content.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "{}" {
		t.Fatalf("expected empty object, got %q", rr.Body.String())
	}
}

func TestContentJSONServesStoredDocument(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{Games: []content.Game{{Name: "Rangoli Run"}}})

	rr := fx.get(t, "/data/content.json")
	if !strings.Contains(rr.Body.String(), `"sub": "Rangoli Run"`) {
		t.Fatalf("expected stored document, got %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestShowHomeUsesDefaultsWithoutContent(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()

	rr := fx.get(t, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	data := fx.html.lastData(t)
	home := data["home"].(content.Home)
	if home.HeroText != content.DefaultHome().HeroText {
		t.Fatalf("expected default hero text, got %q", home.HeroText)
	}
	site := data["site"].(gin.H)
	if items, _ := site["navItems"].([]content.NavItem); len(items) == 0 {
		t.Fatal("expected default navigation")
	}
}

func TestShowGamesComingSoonWhenEmpty(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()

	fx.get(t, "/games")
	if fx.html.lastData(t)["comingSoon"] != true {
		t.Fatal("expected coming soon placeholder")
	}

	fx.seed(t, &content.SiteContent{Games: []content.Game{{Name: "B"}, {Name: "A"}}})
	fx.get(t, "/games")
	data := fx.html.lastData(t)
	games := data["games"].([]content.Game)
	if data["comingSoon"] != false || len(games) != 2 || games[0].Name != "B" {
		t.Fatalf("expected games in stored order, got %+v", games)
	}
}

func TestShowGameBySlug(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{
		Games:         []content.Game{{Name: "Rangoli Run"}, {Name: "Chai Break"}},
		GGProductions: &content.GGProductions{Projects: []content.Game{{Name: "Client Work"}}},
	})

	rr := fx.get(t, "/games/client-work")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	data := fx.html.lastData(t)
	if data["game"].(content.Game).Name != "Client Work" {
		t.Fatalf("unexpected game %+v", data["game"])
	}
	if others := data["others"].([]content.Game); len(others) != 2 {
		t.Fatalf("expected two other games, got %+v", others)
	}

	rr = fx.get(t, "/games/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if fx.html.lastData(t)["notFound"] != true {
		t.Fatal("expected not found flag")
	}
}

func TestShowGameKeepsSameNamedEntriesInOthers(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{
		Games:         []content.Game{{Name: "Echo"}, {Name: "Drift"}},
		GGProductions: &content.GGProductions{Projects: []content.Game{{Name: "Echo", DevelopedBy: "Client"}}},
	})

	rr := fx.get(t, "/games/echo")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	others := fx.html.lastData(t)["others"].([]content.Game)
	if len(others) != 2 || others[1].DevelopedBy != "Client" {
		t.Fatalf("expected the production project named Echo to be listed, got %+v", others)
	}
}

func TestShowPolicyRendersSanitizedMarkdown(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{Policy: &content.Policy{Privacy: &content.PolicyDocument{
		Title:   "Privacy Policy",
		Content: "# Data\nWe keep **little**.<script>alert(1)</script>",
	}}})

	fx.get(t, "/privacy")
	body := string(fx.html.lastData(t)["body"].(template.HTML))
	if !strings.Contains(body, "<strong>little</strong>") {
		t.Fatalf("expected rendered markdown, got %q", body)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("expected script to be stripped, got %q", body)
	}

	fx.get(t, "/cookies")
	if policy := fx.html.lastData(t)["policy"].(content.PolicyDocument); policy.Title != "Cookies Policy" {
		t.Fatalf("expected default cookies policy, got %+v", policy)
	}
}

func TestShowContactUsFillsDefaults(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{Contact: &content.Contact{Email: "hello@example.com"}})

	fx.get(t, "/contact-us")
	contact := fx.html.lastData(t)["contact"].(content.Contact)
	if contact.Email != "hello@example.com" || contact.ButtonText == "" {
		t.Fatalf("unexpected contact %+v", contact)
	}
}

func TestSubmitContactReportsGenericFailure(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"","email":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := fx.do(req, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if body := decodeJSON(t, rr); body["error"] != "Failed to submit form." || body["success"] != false {
		t.Fatalf("unexpected body %v", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("name=Asha&email=asha%40example.com&message=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = fx.do(req, nil)
	if body := decodeJSON(t, rr); body["success"] != true {
		t.Fatalf("expected success for form post, got %v", body)
	}
}

func TestHealthCheck(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	if err := os.MkdirAll(filepath.Clean(fx.uploadDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	rr := fx.get(t, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	body := decodeJSON(t, rr)
	if body["content"] != "missing" || body["uploads"] != "ok" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestShowGameEmbedsHostedTrailer(t *testing.T) {
	fx := newHandlerFixture(t).withPublicRoutes()
	fx.seed(t, &content.SiteContent{Games: []content.Game{
		{Name: "Hosted", Video: "https://youtu.be/dQw4w9WgXcQ"},
		{Name: "Uploaded", Video: "/uploads/1-0-video.mp4"},
	}})

	fx.get(t, "/games/hosted")
	if _, ok := fx.html.lastData(t)["trailer"].(trailerEmbed); !ok {
		t.Fatal("expected trailer embed for hosted video")
	}

	fx.get(t, "/games/uploaded")
	if _, ok := fx.html.lastData(t)["trailer"]; ok {
		t.Fatal("uploaded trailers should play from the uploads directory")
	}
}
