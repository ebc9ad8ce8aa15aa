package loam

// EntryMetadata represents the frontmatter of a library document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type EntryMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Expression  string `json:"expression" mapstructure:"expression"`
	Description string `json:"description" mapstructure:"description"`
}
