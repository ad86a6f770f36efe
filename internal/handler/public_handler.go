package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ContentJSON serves the whole document for client-side readers. A missing
// or unreadable document is served as an empty object.
func (a *API) ContentJSON(c *gin.Context) {
	data, err := a.store.Raw()
	if err != nil {
		if !errors.Is(err, service.ErrContentNotFound) {
			a.logger.Warn("serve site content failed", zap.Error(err))
		}
		data = []byte("{}")
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ShowHome renders the landing page.
func (a *API) ShowHome(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "home.html", doc, gin.H{
		"home":  doc.HomeOrDefault(),
		"games": content.ListedGames(doc),
	})
}

// ShowGames renders the games catalog, or a placeholder while it is empty.
func (a *API) ShowGames(c *gin.Context) {
	doc := a.store.Load()
	games := content.ListedGames(doc)
	a.renderHTML(c, http.StatusOK, "games.html", doc, gin.H{
		"title":      "Games | Gattabara Games",
		"games":      games,
		"comingSoon": len(games) == 0,
	})
}

// ShowGame renders one game or production project looked up by slug.
func (a *API) ShowGame(c *gin.Context) {
	doc := a.store.Load()
	slug := c.Param("slug")

	game, ok := content.FindProject(doc, slug)
	if !ok {
		a.renderHTML(c, http.StatusNotFound, "game.html", doc, gin.H{
			"title":    "Game not found | Gattabara Games",
			"notFound": true,
		})
		return
	}

	data := gin.H{
		"title":  game.Name + " | Gattabara Games",
		"game":   game,
		"others": content.OtherProjects(doc, slug),
	}
	if trailer, ok := parseTrailerEmbed(game.Video); ok {
		data["trailer"] = trailer
	}
	a.renderHTML(c, http.StatusOK, "game.html", doc, data)
}

// ShowProjects 展示 GG Productions 的项目列表
func (a *API) ShowProjects(c *gin.Context) {
	doc := a.store.Load()
	gg := doc.GGProductionsOrDefault()
	a.renderHTML(c, http.StatusOK, "projects.html", doc, gin.H{
		"title":      "Projects | Gattabara Games",
		"projects":   gg.Projects,
		"comingSoon": len(gg.Projects) == 0,
	})
}

func (a *API) ShowGGProductions(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "gg_productions.html", doc, gin.H{
		"title": "GG Productions | Gattabara Games",
		"gg":    doc.GGProductionsOrDefault(),
	})
}

func (a *API) ShowAbout(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "about.html", doc, gin.H{
		"title": "About | Gattabara Games",
		"about": doc.AboutOrDefault(),
	})
}

func (a *API) ShowPitch(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "pitch.html", doc, gin.H{
		"title":   "Pitch Us | Gattabara Games",
		"contact": doc.ContactOrDefault(),
	})
}

func (a *API) ShowPitchForm(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "pitch_form.html", doc, gin.H{
		"title":   "Pitch Us | Gattabara Games",
		"contact": doc.ContactOrDefault(),
	})
}

func (a *API) ShowContactUs(c *gin.Context) {
	doc := a.store.Load()
	a.renderHTML(c, http.StatusOK, "contact.html", doc, gin.H{
		"title":   "Contact Us | Gattabara Games",
		"contact": doc.ContactOrDefault(),
	})
}

// ShowPolicy returns a handler rendering the named policy ("privacy" or
// "cookies"), falling back to the bundled text when the document has none.
func (a *API) ShowPolicy(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc := a.store.Load()
		policy, ok := doc.PolicyByName(name)
		if !ok {
			defaults := content.DefaultPolicy(a.now())
			policy, _ = (&content.SiteContent{Policy: &defaults}).PolicyByName(name)
		}

		body, err := renderMarkdown(policy.Content)
		if err != nil {
			a.logger.Warn("render policy failed", zap.String("policy", name), zap.Error(err))
			body = template.HTML(template.HTMLEscapeString(policy.Content))
		}

		a.renderHTML(c, http.StatusOK, "policy.html", doc, gin.H{
			"title":  policy.Title + " | Gattabara Games",
			"policy": policy,
			"body":   body,
		})
	}
}

// NotFound 渲染通用 404 页面
func (a *API) NotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", a.store.Load(), gin.H{
		"title": "Not found | Gattabara Games",
	})
}

func renderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
