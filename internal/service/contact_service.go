package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gattabara/site/internal/db"
	"github.com/gattabara/site/internal/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrContactInvalidInput is returned when a submission misses a field.
var ErrContactInvalidInput = errors.New("invalid contact submission")

const maxContactMessageRunes = 5000

// ContactInput is what the pitch / contact form posts.
type ContactInput struct {
	Name     string
	Email    string
	Message  string
	RemoteIP string
}

// ContactService accepts contact form submissions. Nothing is delivered;
// submissions are logged and kept for the admin.
type ContactService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewContactService 构造 ContactService
func NewContactService(gdb *gorm.DB, logger *zap.Logger) *ContactService {
	return &ContactService{db: gdb, logger: logging.OrNop(logger)}
}

// Submit validates and stores a submission. The message is optional: the
// pitch form only asks for a name and an e-mail address.
func (s *ContactService) Submit(input ContactInput) (*db.ContactSubmission, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if err := validateContactInput(name, email, message); err != nil {
		return nil, err
	}

	submission := db.ContactSubmission{
		Reference: uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		RemoteIP:  strings.TrimSpace(input.RemoteIP),
	}

	s.logger.Info("contact form submitted",
		zap.String("reference", submission.Reference),
		zap.String("name", name),
		zap.String("email", email),
		zap.Int("message_runes", utf8.RuneCountInString(message)),
	)

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return &submission, nil
}

// ListRecent returns the newest submissions first.
func (s *ContactService) ListRecent(limit int) ([]db.ContactSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []db.ContactSubmission
	if err := s.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return items, nil
}

func validateContactInput(name, email, message string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrContactInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrContactInvalidInput)
	}
	if utf8.RuneCountInString(message) > maxContactMessageRunes {
		return fmt.Errorf("%w: message is too long", ErrContactInvalidInput)
	}
	return nil
}
