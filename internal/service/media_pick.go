package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// PickedMedia is a file picked in the admin editor, converted to the inline
// payload the editor keeps until the document is saved.
type PickedMedia struct {
	Kind     PickKind
	MimeType string
	Size     int64
	DataURL  string
}

// InlineFromPick reads a picked file, enforces the size ceiling for kind,
// sniffs its MIME type and encodes it as a data URI.
func InlineFromPick(kind PickKind, r io.Reader) (PickedMedia, error) {
	limit := kind.MaxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return PickedMedia{}, fmt.Errorf("read picked media: %w", err)
	}
	if int64(len(data)) > limit {
		return PickedMedia{}, fmt.Errorf("%w: %s files are limited to %d MB", ErrMediaTooLarge, kind, limit>>20)
	}
	if len(data) == 0 {
		return PickedMedia{}, fmt.Errorf("%w: empty file", ErrMediaTypeInvalid)
	}

	detected := mimetype.Detect(data).String()
	mimeType, _, _ := strings.Cut(detected, ";")
	mimeType = strings.TrimSpace(mimeType)
	if !kind.Accepts(mimeType) {
		return PickedMedia{}, fmt.Errorf("%w: %s is not allowed for %s", ErrMediaTypeInvalid, mimeType, kind)
	}

	return PickedMedia{
		Kind:     kind,
		MimeType: mimeType,
		Size:     int64(len(data)),
		DataURL:  EncodeDataURI(mimeType, data),
	}, nil
}
