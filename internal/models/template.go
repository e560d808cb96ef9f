package models

// Template categories assigned by the registry.
const (
	CategoryBusiness = "business"
	CategoryCreative = "creative"
	CategoryPersonal = "personal"
)

// TemplateInfo describes a renderable template. It is derived, never persisted.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	HasTypes    bool   `json:"hasTypes"`
	HasReadme   bool   `json:"hasReadme"`
}
