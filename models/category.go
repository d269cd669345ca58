// models/category.go
package models

// Category classifies complaints; names carry per-language translations.
type Category struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda,omitempty"`
	NameFrench      string `json:"nameFrench,omitempty"`
	Description     string `json:"description,omitempty"`
	Institution     *User  `json:"institution,omitempty"`
}

// LocalizedName picks the translation for a language code, falling back to
// the default name when no translation exists.
func (c Category) LocalizedName(language string) string {
	switch language {
	case "rw":
		if c.NameKinyarwanda != "" {
			return c.NameKinyarwanda
		}
	case "fr":
		if c.NameFrench != "" {
			return c.NameFrench
		}
	}
	return c.Name
}
