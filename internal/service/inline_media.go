package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDataURI   = errors.New("invalid inline media payload")
	ErrMediaTooLarge    = errors.New("media file exceeds size limit")
	ErrMediaTypeInvalid = errors.New("media type is not allowed")
)

// PickKind is what the admin editor is picking a file for. Each kind has
// its own size ceiling.
type PickKind string

const (
	PickImage PickKind = "image"
	PickLogo  PickKind = "logo"
	PickVideo PickKind = "video"
)

const (
	maxImageBytes = 10 << 20
	maxLogoBytes  = 2 << 20
	maxVideoBytes = 50 << 20
)

// ParsePickKind normalizes the kind sent by the editor; blank means image.
func ParsePickKind(raw string) (PickKind, error) {
	switch PickKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PickImage:
		return PickImage, nil
	case PickLogo:
		return PickLogo, nil
	case PickVideo:
		return PickVideo, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrMediaTypeInvalid, raw)
	}
}

// MaxBytes is the size ceiling for the kind.
func (k PickKind) MaxBytes() int64 {
	switch k {
	case PickLogo:
		return maxLogoBytes
	case PickVideo:
		return maxVideoBytes
	default:
		return maxImageBytes
	}
}

// Accepts reports whether a MIME type may be picked for the kind.
func (k PickKind) Accepts(mimeType string) bool {
	family := strings.ToLower(mimeType)
	if k == PickVideo {
		return strings.HasPrefix(family, "video/")
	}
	return strings.HasPrefix(family, "image/")
}

// DecodeDataURI splits a base64 data URI into its MIME type and bytes.
func DecodeDataURI(value string) (string, []byte, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "data:") {
		return "", nil, ErrInvalidDataURI
	}

	header, payload, found := strings.Cut(trimmed[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURI)
	}

	params := strings.Split(header, ";")
	mimeType := strings.ToLower(strings.TrimSpace(params[0]))
	if mimeType == "" || !strings.Contains(mimeType, "/") {
		return "", nil, fmt.Errorf("%w: missing media type", ErrInvalidDataURI)
	}

	isBase64 := false
	for _, param := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(param), "base64") {
			isBase64 = true
		}
	}
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	payload = strings.Join(strings.Fields(payload), "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
	}

	return mimeType, data, nil
}

// EncodeDataURI builds the inline payload the editor keeps in its draft.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ExtensionForMIME derives a file extension from the MIME subtype, e.g.
// image/png -> png, image/svg+xml -> svg. Unknown or odd subtypes fall back
// to "bin".
func ExtensionForMIME(mimeType string) string {
	_, subtype, found := strings.Cut(strings.ToLower(mimeType), "/")
	if !found {
		return "bin"
	}
	if base, _, ok := strings.Cut(subtype, "+"); ok {
		subtype = base
	}
	switch subtype {
	case "quicktime":
		return "mov"
	case "x-icon", "vnd.microsoft.icon":
		return "ico"
	}

	var b strings.Builder
	for _, r := range subtype {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.Len() > 10 {
		return "bin"
	}
	return b.String()
}
