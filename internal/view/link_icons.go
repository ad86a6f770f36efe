package view

import (
	"net/url"
	"strings"
)

type linkIconAsset struct {
	Key   string
	SVG   string
	Match []string
}

var (
	linkIconDefinitions = []linkIconAsset{
		{Key: "store", Match: []string{"steam", "itch.io", "epicgames", "play.google", "apps.apple", "xbox", "playstation", "nintendo"}, SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M6.5 8.25h11a4 4 0 0 1 3.92 3.2l.9 4.5a2.5 2.5 0 0 1-4.36 2.1l-1.71-2.05H7.75l-1.71 2.05a2.5 2.5 0 0 1-4.36-2.1l.9-4.5A4 4 0 0 1 6.5 8.25z"/><path d="M8 11v3M6.5 12.5h3"/><circle cx="15.5" cy="12" r=".75"/><circle cx="17.25" cy="13.75" r=".75"/></svg>`},
		{Key: "github", Match: []string{"github"}, SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M12 .297c-6.63 0-12 5.373-12 12 0 5.303 3.438 9.8 8.205 11.385.6.113.82-.258.82-.577 0-.285-.01-1.04-.015-2.04-3.338.724-4.042-1.61-4.042-1.61-.546-1.142-1.335-1.512-1.335-1.512-1.087-.744.084-.729.084-.729 1.205.084 1.838 1.236 1.838 1.236 1.07 1.835 2.809 1.305 3.495.998.108-.776.417-1.305.76-1.605-2.665-.3-5.466-1.332-5.466-5.93 0-1.31.465-2.38 1.235-3.22-.135-.303-.54-1.523.105-3.176 0 0 1.005-.322 3.3 1.23.96-.267 1.98-.399 3-.405 1.02.006 2.04.138 3 .405 2.28-1.552 3.285-1.23 3.285-1.23.645 1.653.24 2.873.12 3.176.765.84 1.23 1.91 1.23 3.22 0 4.61-2.805 5.625-5.475 5.92.42.36.81 1.096.81 2.22 0 1.606-.015 2.896-.015 3.286 0 .315.21.69.825.57C20.565 22.092 24 17.592 24 12.297c0-6.627-5.373-12-12-12"/></svg>`},
		{Key: "x", Match: []string{"x.com", "twitter"}, SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M18.901 1.153h3.68l-8.04 9.19L24 22.846h-7.406l-5.8-7.584-6.638 7.584H.474l8.6-9.83L0 1.154h7.594l5.243 6.932ZM17.61 20.644h2.039L6.486 3.24H4.298Z"/></svg>`},
		{Key: "email", Match: []string{"mailto:"}, SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
	}
	defaultLinkIcon = linkIconAsset{Key: "website", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 21c4.193 0 7.716-2.867 8.716-6.747M12 21c-4.193 0-7.716-2.867-8.716-6.747M12 21c2.485 0 4.5-4.03 4.5-9s-2.015-9-4.5-9m0 18c-2.485 0-4.5-4.03-4.5-9s2.015-9 4.5-9m0-0c3.365 0 6.299 1.847 7.843 4.582M12 3c-3.365 0-6.299 1.847-7.843 4.582m15.686 0c.737 1.305 1.157 2.812 1.157 4.418 0 .778-.099 1.533-.284 2.253m-.873 4.836C18.133 15.685 15.162 16.5 12 16.5s-6.134-.815-8.716-2.247m0 0A8.948 8.948 0 0 1 3 12c0-1.605.42-3.112 1.157-4.417"/></svg>`}
)

// LinkIconKey picks an icon for a store or social link from its label and URL.
func LinkIconKey(label, rawURL string) string {
	haystack := strings.ToLower(strings.TrimSpace(label) + " " + strings.TrimSpace(rawURL))
	if parsed, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && parsed.Host != "" {
		haystack += " " + strings.ToLower(parsed.Host)
	}
	for _, icon := range linkIconDefinitions {
		for _, needle := range icon.Match {
			if strings.Contains(haystack, needle) {
				return icon.Key
			}
		}
	}
	return defaultLinkIcon.Key
}

// LinkIconSVG resolves the SVG markup for a link, falling back to the website icon.
func LinkIconSVG(label, rawURL string) string {
	key := LinkIconKey(label, rawURL)
	for _, icon := range linkIconDefinitions {
		if icon.Key == key {
			return icon.SVG
		}
	}
	return defaultLinkIcon.SVG
}
