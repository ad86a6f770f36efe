package service

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gattabara/site/internal/content"
	"github.com/gattabara/site/internal/logging"
	"go.uber.org/zap"
)

// ErrContentNotFound is returned by Raw when there is no usable content file.
var ErrContentNotFound = errors.New("site content not found")

// UploadedAsset describes a file the store wrote while materializing an
// inline payload.
type UploadedAsset struct {
	Path     string
	Category string
	MimeType string
	Data     []byte
}

// AssetRecorder is told about every file the store writes or deletes.
type AssetRecorder interface {
	Record(asset UploadedAsset) error
	Forget(path string) error
}

// ContentStoreOptions configures a ContentStore.
type ContentStoreOptions struct {
	ContentPath string
	UploadDir   string
	UploadURL   string
	Logger      *zap.Logger
	Assets      AssetRecorder
}

// ContentStore reads and replaces the site content document and keeps the
// uploads directory in step with it.
type ContentStore struct {
	contentPath string
	uploadDir   string
	uploadURL   string
	logger      *zap.Logger
	assets      AssetRecorder
	now         func() time.Time

	mu sync.Mutex
}

type writtenUpload struct {
	file  string
	asset UploadedAsset
}

// NewContentStore returns a ContentStore for the given paths.
func NewContentStore(opts ContentStoreOptions) *ContentStore {
	uploadURL := "/" + strings.Trim(strings.TrimSpace(opts.UploadURL), "/")
	if uploadURL == "/" {
		uploadURL = "/uploads"
	}
	return &ContentStore{
		contentPath: opts.ContentPath,
		uploadDir:   opts.UploadDir,
		uploadURL:   uploadURL,
		logger:      logging.OrNop(opts.Logger),
		assets:      opts.Assets,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for generated file names.
func (s *ContentStore) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// UploadURL is the URL prefix under which uploads are served.
func (s *ContentStore) UploadURL() string {
	return s.uploadURL
}

// UploadDir is the directory holding uploaded files.
func (s *ContentStore) UploadDir() string {
	return s.uploadDir
}

// Load returns the stored document, or nil when the file is missing or
// cannot be parsed. Failures are logged, never returned.
func (s *ContentStore) Load() *content.SiteContent {
	data, err := os.ReadFile(s.contentPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read site content failed", zap.String("path", s.contentPath), zap.Error(err))
		}
		return nil
	}

	doc, err := content.Parse(data)
	if err != nil {
		s.logger.Warn("parse site content failed", zap.String("path", s.contentPath), zap.Error(err))
		return nil
	}
	return doc
}

// Raw returns the stored document bytes for the public fetch.
func (s *ContentStore) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.contentPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrContentNotFound
		}
		s.logger.Warn("read site content failed", zap.String("path", s.contentPath), zap.Error(err))
		return nil, ErrContentNotFound
	}
	if _, err := content.Parse(data); err != nil {
		s.logger.Warn("parse site content failed", zap.String("path", s.contentPath), zap.Error(err))
		return nil, ErrContentNotFound
	}
	return data, nil
}

// Save replaces the whole document. Inline payloads are written to the
// uploads directory and replaced by their URL, the document is persisted,
// and uploads referenced only by the previous document are deleted.
// The persisted document is returned.
func (s *ContentStore) Save(doc *content.SiteContent) (*content.SiteContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc == nil {
		doc = &content.SiteContent{}
	}
	processed := doc.Clone()
	if processed == nil {
		return nil, errors.New("copy site content: encoding failed")
	}

	previous := s.Load()

	written, err := s.materialize(processed)
	if err != nil {
		s.discard(written)
		s.logger.Error("materialize inline media failed", zap.Error(err))
		return nil, err
	}

	data, err := content.Marshal(processed)
	if err != nil {
		s.discard(written)
		return nil, err
	}
	if err := writeFileAtomic(s.contentPath, data); err != nil {
		s.discard(written)
		s.logger.Error("write site content failed", zap.String("path", s.contentPath), zap.Error(err))
		return nil, fmt.Errorf("write content file: %w", err)
	}

	for _, upload := range written {
		s.logger.Info("stored inline media", zap.String("path", upload.asset.Path), zap.String("mime", upload.asset.MimeType), zap.Int("bytes", len(upload.asset.Data)))
		if s.assets != nil {
			if err := s.assets.Record(upload.asset); err != nil {
				s.logger.Warn("record upload asset failed", zap.String("path", upload.asset.Path), zap.Error(err))
			}
		}
	}

	if previous != nil {
		s.removeOrphans(content.UploadRefs(previous, s.uploadURL), content.UploadRefs(processed, s.uploadURL))
	}

	return processed, nil
}

// Seed writes doc only when no content file exists yet. It reports whether
// the document was written.
func (s *ContentStore) Seed(doc *content.SiteContent) (bool, error) {
	if _, err := os.Stat(s.contentPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat content file: %w", err)
	}
	if _, err := s.Save(doc); err != nil {
		return false, err
	}
	return true, nil
}

// UploadFilePath maps an upload reference to its file. The boolean is false
// for references outside the uploads directory.
func (s *ContentStore) UploadFilePath(ref string) (string, bool) {
	if !content.IsUploadRef(ref, s.uploadURL) {
		return "", false
	}
	name := strings.TrimPrefix(ref, s.uploadURL+"/")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return filepath.Join(s.uploadDir, name), true
}

func (s *ContentStore) materialize(doc *content.SiteContent) ([]writtenUpload, error) {
	stamp := s.now().UnixMilli()
	var written []writtenUpload
	dirReady := false

	err := content.WalkMedia(doc, func(slot content.MediaSlot, value *string) error {
		if !content.IsInline(*value) {
			return nil
		}
		// 旧版 projectStack 只保留已有的上传路径，不接收新的内联数据
		if slot.Legacy {
			return fmt.Errorf("%w: %s #%d does not accept new media", ErrInvalidDataURI, slot.Category, slot.Index)
		}

		mimeType, data, err := DecodeDataURI(*value)
		if err != nil {
			return fmt.Errorf("decode %s #%d: %w", slot.Category, slot.Index, err)
		}
		if !slotAccepts(slot.Kind, mimeType) {
			return fmt.Errorf("%w: %s in %s #%d", ErrMediaTypeInvalid, mimeType, slot.Category, slot.Index)
		}

		if !dirReady {
			if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
				return fmt.Errorf("create upload dir: %w", err)
			}
			dirReady = true
		}

		name, file, err := s.createUpload(uploadFileName(stamp, slot, ExtensionForMIME(mimeType)), data)
		if err != nil {
			return err
		}

		ref := s.uploadURL + "/" + name
		written = append(written, writtenUpload{
			file: file,
			asset: UploadedAsset{
				Path:     ref,
				Category: string(slot.Category),
				MimeType: mimeType,
				Data:     data,
			},
		})
		*value = ref
		return nil
	})

	return written, err
}

// createUpload writes data under name, adding a numeric suffix instead of
// overwriting an existing file.
func (s *ContentStore) createUpload(name string, data []byte) (string, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for attempt := 0; attempt < 100; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = base + "-" + strconv.Itoa(attempt) + ext
		}
		file := filepath.Join(s.uploadDir, candidate)

		f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", "", fmt.Errorf("create upload %s: %w", candidate, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(file)
			return "", "", fmt.Errorf("write upload %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(file)
			return "", "", fmt.Errorf("close upload %s: %w", candidate, err)
		}
		return candidate, file, nil
	}

	return "", "", fmt.Errorf("create upload %s: too many name collisions", name)
}

func (s *ContentStore) discard(written []writtenUpload) {
	for _, upload := range written {
		if err := os.Remove(upload.file); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("remove upload from aborted save failed", zap.String("file", upload.file), zap.Error(err))
		}
	}
}

func (s *ContentStore) removeOrphans(previous, current map[string]struct{}) {
	for _, ref := range slices.Sorted(maps.Keys(previous)) {
		if _, keep := current[ref]; keep {
			continue
		}

		file, ok := s.UploadFilePath(ref)
		if !ok {
			s.logger.Warn("skip upload reference outside uploads directory", zap.String("ref", ref))
			continue
		}

		if err := os.Remove(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.logger.Debug("orphaned upload already gone", zap.String("ref", ref))
			} else {
				s.logger.Warn("delete orphaned upload failed", zap.String("ref", ref), zap.Error(err))
				continue
			}
		} else {
			s.logger.Info("deleted orphaned upload", zap.String("ref", ref))
		}

		if s.assets != nil {
			if err := s.assets.Forget(ref); err != nil {
				s.logger.Warn("forget upload asset failed", zap.String("ref", ref), zap.Error(err))
			}
		}
	}
}

func slotAccepts(kind content.MediaKind, mimeType string) bool {
	if kind == content.MediaVideo {
		return PickVideo.Accepts(mimeType)
	}
	return PickImage.Accepts(mimeType)
}

func uploadFileName(stamp int64, slot content.MediaSlot, ext string) string {
	prefix := strconv.FormatInt(stamp, 10) + "-" + strconv.Itoa(slot.Index)
	var suffix string
	switch slot.Category {
	case content.CategoryGameImage:
		suffix = ""
	case content.CategoryGameScreenshot:
		suffix = "-" + strconv.Itoa(slot.Sub) + "-sc"
	case content.CategoryGameVideo:
		suffix = "-video"
	case content.CategoryProjectImage:
		suffix = "-project"
	case content.CategoryProjectScreenshot:
		suffix = "-" + strconv.Itoa(slot.Sub) + "-project-sc"
	case content.CategoryProjectVideo:
		suffix = "-project-video"
	case content.CategoryClientLogo:
		suffix = "-logo"
	case content.CategoryValueImage:
		suffix = "-value"
	default:
		suffix = "-" + string(slot.Category)
	}
	return prefix + suffix + "." + ext
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
