package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/internal/ui/pretty"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	colored := pretty.NewStyles(true)
	require.NotNil(t, colored)
	// Without a TTY lipgloss may drop the escapes, so only the text is checked.
	assert.Contains(t, colored.Kind.Render("ident"), "ident")
	assert.Contains(t, colored.Unterminated.Render("("), "(")

	plain := pretty.NewStyles(false)
	for name, style := range map[string]interface{ Render(...string) string }{
		"bold":      plain.Bold,
		"unknown":   plain.Unknown,
		"delimiter": plain.Delimiter,
		"legend":    plain.TableLegend,
	} {
		assert.Equal(t, "@", style.Render("@"), name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		mode string
		w    io.Writer
		want bool
	}{
		{"always", &bytes.Buffer{}, true},
		{"never", os.Stdout, false},
		{"auto", &bytes.Buffer{}, false},
		{"", &bytes.Buffer{}, false},
		{"sometimes", &bytes.Buffer{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.w), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
