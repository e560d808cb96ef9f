// Package templates holds the declarative template registry: which templates exist,
// their sample data and the JSON schema their preview data is checked against.
package templates

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/models"
	"github.com/shineplatform/sitegen/internal/util"
)

//go:embed assets
var assets embed.FS

// ErrUnknownTemplate is returned for ids that are not in the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// Descriptor is one registry entry as declared in registry.yaml.
type Descriptor struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	HasTypes    bool   `yaml:"hasTypes"`
	HasReadme   bool   `yaml:"hasReadme"`
	SampleData  string `yaml:"sampleData"`
	Schema      string `yaml:"schema"`
}

type registryFile struct {
	Templates []Descriptor `yaml:"templates"`
}

// SchemaError lists the ways preview data deviates from its template schema.
type SchemaError struct {
	Template string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("data does not match %s schema: %s", e.Template, strings.Join(e.Problems, "; "))
}

// Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	descriptors []Descriptor
	samples     map[string]json.RawMessage
	schemas     map[string]*gojsonschema.Schema
}

// Default loads the registry compiled into the binary.
func Default() (*Registry, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads registry.yaml and the files it references from fsys. The first
// declared template is the fallback for unknown ids.
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, "registry.yaml")
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, errors.New("registry declares no templates")
	}

	r := &Registry{
		samples: make(map[string]json.RawMessage, len(file.Templates)),
		schemas: make(map[string]*gojsonschema.Schema, len(file.Templates)),
	}
	seen := make(map[string]bool, len(file.Templates))
	for _, d := range file.Templates {
		if d.ID == "" {
			return nil, errors.New("registry entry without id")
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate template id %q", d.ID)
		}
		seen[d.ID] = true

		sample, err := fs.ReadFile(fsys, d.SampleData)
		if err != nil {
			return nil, fmt.Errorf("template %s: read sample data: %w", d.ID, err)
		}
		if !json.Valid(sample) {
			return nil, fmt.Errorf("template %s: sample data is not valid JSON", d.ID)
		}
		r.samples[d.ID] = json.RawMessage(sample)

		if d.Schema != "" {
			schemaBytes, err := fs.ReadFile(fsys, d.Schema)
			if err != nil {
				return nil, fmt.Errorf("template %s: read schema: %w", d.ID, err)
			}
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
			if err != nil {
				return nil, fmt.Errorf("template %s: compile schema: %w", d.ID, err)
			}
			r.schemas[d.ID] = schema
		}
		r.descriptors = append(r.descriptors, d)
	}
	return r, nil
}

// List returns the registered templates in declaration order.
func (r *Registry) List() []models.TemplateInfo {
	out := make([]models.TemplateInfo, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, models.TemplateInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			HasTypes:    d.HasTypes,
			HasReadme:   d.HasReadme,
		})
	}
	return out
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.samples[id]
	return ok
}

// DefaultID is the template used when an id is unknown.
func (r *Registry) DefaultID() string {
	return r.descriptors[0].ID
}

// DefaultData returns the sample payload for id. Unknown ids silently get the
// default template's sample data; the fallback is logged and counted.
func (r *Registry) DefaultData(id string) json.RawMessage {
	if data, ok := r.samples[id]; ok {
		return data
	}
	fields := logrus.Fields{
		"template": util.SanitizeForLog(id),
		"fallback": r.DefaultID(),
	}
	if s := r.Suggest(id); s != "" {
		fields["did_you_mean"] = s
	}
	logger.WithFields(fields).Warn("unknown template id; using default sample data")
	metrics.IncTemplateFallback("default_data")
	return r.samples[r.DefaultID()]
}

// Suggest returns the closest registered id for a misspelt one, or "".
func (r *Registry) Suggest(id string) string {
	if id == "" {
		return ""
	}
	ids := make([]string, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		ids = append(ids, d.ID)
	}
	matches := fuzzy.Find(strings.ToLower(id), ids)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Validate checks data against the template schema. It returns ErrUnknownTemplate
// for unregistered ids and a *SchemaError when the data does not conform.
func (r *Registry) Validate(id string, data json.RawMessage) error {
	if !r.Has(id) {
		return ErrUnknownTemplate
	}
	schema, ok := r.schemas[id]
	if !ok {
		return nil
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaError{Template: id, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &SchemaError{Template: id, Problems: problems}
}
