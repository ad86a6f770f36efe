package content

import "strings"

// MediaKind tells whether a slot holds a still image or a video.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaCategory names the document location a media slot belongs to.
type MediaCategory string

const (
	CategoryGameImage         MediaCategory = "game-image"
	CategoryGameScreenshot    MediaCategory = "game-screenshot"
	CategoryGameVideo         MediaCategory = "game-video"
	CategoryProjectImage      MediaCategory = "project-image"
	CategoryProjectScreenshot MediaCategory = "project-screenshot"
	CategoryProjectVideo      MediaCategory = "project-video"
	CategoryClientLogo        MediaCategory = "client-logo"
	CategoryValueImage        MediaCategory = "value-image"
	CategoryLegacyProject     MediaCategory = "legacy-project-image"
)

// MediaSlot describes one media field visited by WalkMedia.
// Index is the position of the owning item, Sub the position inside a list
// field such as screenshots (-1 when the field is not a list).
type MediaSlot struct {
	Category MediaCategory
	Kind     MediaKind
	Index    int
	Sub      int
	Legacy   bool
}

// WalkMedia calls fn for every non-empty media field of the document, in a
// fixed order. fn receives a pointer so it may rewrite the value in place.
func WalkMedia(doc *SiteContent, fn func(slot MediaSlot, value *string) error) error {
	if doc == nil {
		return nil
	}

	visit := func(slot MediaSlot, value *string) error {
		if value == nil || *value == "" {
			return nil
		}
		return fn(slot, value)
	}

	for i := range doc.Games {
		if err := walkEntry(&doc.Games[i], i, CategoryGameImage, CategoryGameScreenshot, CategoryGameVideo, visit); err != nil {
			return err
		}
	}

	if gg := doc.GGProductions; gg != nil {
		for i := range gg.Projects {
			if err := walkEntry(&gg.Projects[i], i, CategoryProjectImage, CategoryProjectScreenshot, CategoryProjectVideo, visit); err != nil {
				return err
			}
		}
		for j := range gg.ClientLogos {
			slot := MediaSlot{Category: CategoryClientLogo, Kind: MediaImage, Index: j, Sub: -1}
			if err := visit(slot, &gg.ClientLogos[j]); err != nil {
				return err
			}
		}
	}

	if about := doc.About; about != nil {
		for i := range about.Values {
			slot := MediaSlot{Category: CategoryValueImage, Kind: MediaImage, Index: i, Sub: -1}
			if err := visit(slot, &about.Values[i].Image); err != nil {
				return err
			}
		}
	}

	if doc.Home != nil && doc.Home.ProjectStack != nil {
		for i := range doc.Home.ProjectStack.Projects {
			slot := MediaSlot{Category: CategoryLegacyProject, Kind: MediaImage, Index: i, Sub: -1, Legacy: true}
			if err := visit(slot, &doc.Home.ProjectStack.Projects[i].Image); err != nil {
				return err
			}
		}
	}

	return nil
}

func walkEntry(entry *Game, index int, image, screenshot, video MediaCategory, visit func(MediaSlot, *string) error) error {
	if err := visit(MediaSlot{Category: image, Kind: MediaImage, Index: index, Sub: -1}, &entry.Image); err != nil {
		return err
	}
	for j := range entry.Screenshots {
		if err := visit(MediaSlot{Category: screenshot, Kind: MediaImage, Index: index, Sub: j}, &entry.Screenshots[j]); err != nil {
			return err
		}
	}
	return visit(MediaSlot{Category: video, Kind: MediaVideo, Index: index, Sub: -1}, &entry.Video)
}

// IsInline reports whether the value is an inline data: payload rather than
// a path or URL.
func IsInline(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "data:")
}

// IsUploadRef reports whether value points into the uploads URL prefix.
func IsUploadRef(value, prefix string) bool {
	prefix = normalizePrefix(prefix)
	return strings.HasPrefix(value, prefix) && len(value) > len(prefix)
}

// UploadRefs collects every upload reference of the document, including the
// legacy project stack.
func UploadRefs(doc *SiteContent, prefix string) map[string]struct{} {
	refs := make(map[string]struct{})
	_ = WalkMedia(doc, func(_ MediaSlot, value *string) error {
		if IsUploadRef(*value, prefix) {
			refs[*value] = struct{}{}
		}
		return nil
	})
	return refs
}

func normalizePrefix(prefix string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		trimmed = "/uploads"
	}
	return trimmed + "/"
}
