package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		valid bool
	}{
		{"short", Short, true},
		{"medium", Medium, true},
		{"long", Long, true},
		{"empty", Style(""), false},
		{"unknown", Style("verbose"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.style.IsValid())
		})
	}
}

func TestStyle_Directive(t *testing.T) {
	assert.Equal(t, "Use 2–3 sentences.", Short.Directive())
	assert.Equal(t, "Use 4–5 sentences.", Medium.Directive())
	assert.Equal(t, "Use 6–8 sentences.", Long.Directive())
}

func TestParse(t *testing.T) {
	assert.Equal(t, Medium, Parse("medium"))
	assert.Equal(t, Short, Parse(""))
	assert.Equal(t, Short, Parse("nonsense"))
}

func TestAll(t *testing.T) {
	assert.Equal(t, []Style{Short, Medium, Long}, All())
}
