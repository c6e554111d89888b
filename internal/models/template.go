package models

// Template is the normalized shape of one messaging-provider template as
// returned by the templates proxy endpoint.
type Template struct {
	Name       string              `json:"name"`
	Language   string              `json:"language"`
	Components []TemplateComponent `json:"components"`
}

// TemplateComponent mirrors the provider's component objects (header, body,
// buttons) without interpreting them.
type TemplateComponent struct {
	Type    string `json:"type"`
	Format  string `json:"format,omitempty"`
	Text    string `json:"text,omitempty"`
	Example any    `json:"example,omitempty"`
}
