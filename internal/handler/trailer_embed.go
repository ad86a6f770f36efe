package handler

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// trailerEmbed describes a game trailer hosted on a video platform. Trailers
// stored as uploads are played with a plain <video> element instead.
type trailerEmbed struct {
	Platform string
	Source   string
	EmbedURL string
	Title    string
}

var trailerTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`) // YouTube t=1h2m3s

func parseTrailerEmbed(raw string) (trailerEmbed, bool) {
	trimmed := normalizeTrailerURL(strings.TrimSpace(raw))
	if trimmed == "" {
		return trailerEmbed{}, false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil {
		return trailerEmbed{}, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return trailerEmbed{}, false
	}
	if parsed.Hostname() == "" {
		return trailerEmbed{}, false
	}

	if embed, ok := parseYouTubeTrailer(parsed, trimmed); ok {
		return embed, true
	}
	if embed, ok := parseVimeoTrailer(parsed, trimmed); ok {
		return embed, true
	}
	return trailerEmbed{}, false
}

func normalizeTrailerURL(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	for _, prefix := range []string{"youtube.com/", "www.youtube.com/", "youtu.be/", "vimeo.com/"} {
		if strings.HasPrefix(lower, prefix) {
			return "https://" + raw
		}
	}
	return raw
}

func parseYouTubeTrailer(u *url.URL, source string) (trailerEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = strings.Trim(u.Path, "/")
	case isHostOrSubdomain(host, "youtube.com"):
		path := strings.Trim(u.Path, "/")
		switch {
		case path == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			videoID = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			videoID = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			videoID = strings.TrimPrefix(path, "live/")
		}
	default:
		return trailerEmbed{}, false
	}

	if i := strings.Index(videoID, "/"); i >= 0 {
		videoID = videoID[:i]
	}
	if videoID == "" {
		return trailerEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	values.Set("playsinline", "1")
	if start := parseTrailerStart(u); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	return trailerEmbed{
		Platform: "youtube",
		Source:   source,
		EmbedURL: fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?%s", url.PathEscape(videoID), values.Encode()),
		Title:    "YouTube video player",
	}, true
}

func parseVimeoTrailer(u *url.URL, source string) (trailerEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return trailerEmbed{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	var videoID string
	for _, segment := range segments {
		if segment != "" && onlyDigits(segment) {
			videoID = segment
			break
		}
	}
	if videoID == "" {
		return trailerEmbed{}, false
	}

	return trailerEmbed{
		Platform: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + videoID,
		Title:    "Vimeo video player",
	}, true
}

func parseTrailerStart(u *url.URL) int {
	query := u.Query()
	if value := query.Get("start"); value != "" {
		return parseTrailerTime(value)
	}
	if value := query.Get("t"); value != "" {
		return parseTrailerTime(value)
	}
	return 0
}

func parseTrailerTime(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	if onlyDigits(trimmed) {
		seconds, err := strconv.Atoi(trimmed)
		if err == nil && seconds > 0 {
			return seconds
		}
		return 0
	}

	total := 0
	for _, match := range trailerTimePattern.FindAllStringSubmatch(trimmed, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
