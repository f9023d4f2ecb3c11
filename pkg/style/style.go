package style

// Style represents the verbosity of a generated stand-up report
type Style string

const (
	Short  Style = "short"
	Medium Style = "medium"
	Long   Style = "long"
)

// String returns the string representation of the style
func (s Style) String() string {
	return string(s)
}

// IsValid checks if the style is one of the enumerated values
func (s Style) IsValid() bool {
	switch s {
	case Short, Medium, Long:
		return true
	default:
		return false
	}
}

// Directive returns the sentence-count instruction embedded in the prompt
func (s Style) Directive() string {
	switch s {
	case Medium:
		return "Use 4–5 sentences."
	case Long:
		return "Use 6–8 sentences."
	default:
		return "Use 2–3 sentences."
	}
}

// All returns every valid style in display order
func All() []Style {
	return []Style{Short, Medium, Long}
}

// DefaultStyle returns the default report style
func DefaultStyle() Style {
	return Short
}

// Parse parses a string to a Style, falling back to the default
func Parse(s string) Style {
	st := Style(s)
	if st.IsValid() {
		return st
	}
	return DefaultStyle()
}
