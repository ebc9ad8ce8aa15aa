package domain

// Entry is a named dice expression in a library.
// The Expression field holds the raw roll notation (e.g. "2D6+1"); it is
// parsed lazily by consumers so a library can be listed without evaluating
// every entry.
type Entry struct {
	ID          string `json:"id" yaml:"id"`
	Expression  string `json:"expression" yaml:"expression"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
