package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/storage"
	"github.com/shineplatform/sitegen/internal/templates"
	"github.com/shineplatform/sitegen/internal/util"
)

// SaveInput is the body accepted by Save. Field order drives the order of
// reported validation failures.
type SaveInput struct {
	Key            string          `json:"key" validate:"required"`
	Template       string          `json:"template" validate:"required"`
	Data           json.RawMessage `json:"data"`
	WhatsAppNumber string          `json:"whatsappNumber,omitempty"`
}

// SaveResult is returned by a successful Save.
type SaveResult struct {
	Record     *models.PreviewRecord
	PreviewURL string
}

// TemplateValidator checks preview data against a template's declared shape.
type TemplateValidator interface {
	Validate(id string, data json.RawMessage) error
}

// PreviewOptions tunes PreviewService behaviour. Zero values keep the lenient
// defaults: unknown templates and schema mismatches are logged, not rejected,
// and createdAt is reset on every overwrite.
type PreviewOptions struct {
	Templates         TemplateValidator
	Renderable        func(template string) bool
	StrictTemplates   bool
	PreserveCreatedAt bool
	Notifier          Notifier
}

// PreviewService orchestrates preview CRUD on top of the repository.
type PreviewService struct {
	store    *storage.PreviewStore
	opts     PreviewOptions
	validate *validator.Validate
	now      func() time.Time
}

// NewPreviewService wires the service to a repository.
func NewPreviewService(store *storage.PreviewStore, opts PreviewOptions) *PreviewService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PreviewService{store: store, opts: opts, validate: v, now: time.Now}
}

func (s *PreviewService) validateInput(in SaveInput) error {
	var missing []string
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
	}
	if isMissingJSON(in.Data) {
		missing = append(missing, "data")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if !util.IsSafeKey(in.Key) {
		return &ValidationError{
			Fields: []string{"key"},
			Detail: fmt.Sprintf("key must start with a letter or digit and contain only letters, digits, '-' or '_' (max %d characters)", util.MaxKeyLength),
		}
	}
	return nil
}

// isMissingJSON treats absent data and the empty scalars null, "", false and 0
// as missing. Objects and arrays, even empty ones, are present.
func isMissingJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return false
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	}
	return false
}

// checkTemplate logs unknown templates and schema mismatches. Only strict mode
// turns them into validation failures.
func (s *PreviewService) checkTemplate(in SaveInput) error {
	if s.opts.Templates == nil {
		return nil
	}
	err := s.opts.Templates.Validate(in.Template, in.Data)
	if err == nil {
		return nil
	}

	fields := logrus.Fields{
		"key":      util.SanitizeForLog(in.Key),
		"template": util.SanitizeForLog(in.Template),
	}
	var schemaErr *templates.SchemaError
	switch {
	case errors.Is(err, templates.ErrUnknownTemplate):
		if s.opts.Renderable != nil && s.opts.Renderable(in.Template) {
			return nil
		}
		metrics.IncTemplateFallback("unknown_template")
		logger.WithFields(fields).Warn("preview saved with unregistered template")
		if s.opts.StrictTemplates {
			return &ValidationError{Fields: []string{"template"}, Detail: fmt.Sprintf("template %q is not registered", in.Template)}
		}
	case errors.As(err, &schemaErr):
		metrics.IncTemplateFallback("schema_mismatch")
		fields["problems"] = util.Truncate(strings.Join(schemaErr.Problems, "; "), 512)
		logger.WithFields(fields).Warn("preview data does not match template schema")
		if s.opts.StrictTemplates {
			return &ValidationError{Fields: []string{"data"}, Detail: schemaErr.Error()}
		}
	default:
		return err
	}
	return nil
}

// Save writes a full record under in.Key, replacing any previous one.
func (s *PreviewService) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkTemplate(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &models.PreviewRecord{
		Key:            in.Key,
		Template:       in.Template,
		Data:           in.Data,
		WhatsAppNumber: in.WhatsAppNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if rec.WhatsAppNumber == "" {
		rec.WhatsAppNumber = models.DefaultWhatsAppNumber
	}

	keyField := logrus.Fields{"key": util.SanitizeForLog(in.Key)}
	if s.opts.PreserveCreatedAt {
		if existing, err := s.store.Get(ctx, in.Key); err == nil {
			rec.CreatedAt = existing.CreatedAt
			logger.WithFields(keyField).WithField("created_at", existing.CreatedAt.Format(time.RFC3339)).
				Info("overwriting preview; createdAt preserved")
		}
	} else if s.store.Exists(ctx, in.Key) {
		logger.WithFields(keyField).Warn("overwriting preview; createdAt reset")
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save preview %s: %w", util.SanitizeForLog(in.Key), err)
	}
	metrics.IncPreviewSaved()
	if s.opts.Notifier != nil {
		s.opts.Notifier.PreviewSaved(rec)
	}
	return &SaveResult{Record: rec, PreviewURL: models.PreviewURL(rec.Key)}, nil
}

// Get returns ErrPreviewNotFound when nothing readable is stored under key.
func (s *PreviewService) Get(ctx context.Context, key string) (*models.PreviewRecord, error) {
	if key == "" {
		return nil, &ValidationError{Fields: []string{"key"}}
	}
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, ErrPreviewNotFound
	}
	return rec, nil
}

// List returns every readable preview, most recently updated first.
func (s *PreviewService) List(ctx context.Context) ([]models.PreviewRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list previews: %w", err)
	}
	return records, nil
}

// Delete removes key. Deleting a missing key succeeds.
func (s *PreviewService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return &ValidationError{Fields: []string{"key"}}
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete preview %s: %w", util.SanitizeForLog(key), err)
	}
	logger.Log().WithField("key", util.SanitizeForLog(key)).Info("preview deleted")
	return nil
}
