package content

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug lowercases the name and replaces whitespace runs with a dash.
func Slug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// FindProject looks the slug up in the games catalog first, then in the GG
// Productions projects. The second value is false when nothing matches.
func FindProject(doc *SiteContent, slug string) (Game, bool) {
	if doc == nil || slug == "" {
		return Game{}, false
	}
	for _, entry := range AllProjects(doc) {
		if entry.Slug() == slug {
			return entry, true
		}
	}
	return Game{}, false
}

// OtherProjects returns every entry of AllProjects except the one FindProject
// resolves for slug. Entries sharing its name elsewhere are kept.
func OtherProjects(doc *SiteContent, slug string) []Game {
	all := AllProjects(doc)
	others := make([]Game, 0, len(all))
	skipped := false
	for _, entry := range all {
		if !skipped && entry.Slug() == slug {
			skipped = true
			continue
		}
		others = append(others, entry)
	}
	return others
}

// AllProjects returns games followed by GG Productions projects, in stored order.
func AllProjects(doc *SiteContent) []Game {
	if doc == nil {
		return nil
	}
	items := make([]Game, 0, len(doc.Games))
	items = append(items, doc.Games...)
	if doc.GGProductions != nil {
		items = append(items, doc.GGProductions.Projects...)
	}
	return items
}

// ListedGames returns the games catalog. Documents written before the
// catalog existed keep their entries under home.projectStack.projects, which
// is used when the catalog is empty.
func ListedGames(doc *SiteContent) []Game {
	if doc == nil {
		return nil
	}
	if len(doc.Games) > 0 {
		return doc.Games
	}
	if doc.Home != nil && doc.Home.ProjectStack != nil {
		return doc.Home.ProjectStack.Projects
	}
	return nil
}
