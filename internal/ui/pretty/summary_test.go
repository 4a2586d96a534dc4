package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotok/internal/ui/pretty"
	"github.com/yaklabco/gotok/pkg/runner"
)

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		Units:          3,
		Tokens:         42,
		Branches:       4,
		TokensByKind:   map[string]int{"ident": 20, "paren": 8, "number": 14},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files tokenized:   3")
	assert.Contains(t, result, "Tokens:            42")
	assert.Contains(t, result, "Branches:          4")
	assert.Contains(t, result, "Tokenized cleanly")
	assert.NotContains(t, result, "Unknown:")
	assert.NotContains(t, result, "Units:")
}

func TestFormatSummary_WithProblems(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 1,
		Units:          3,
		Tokens:         10,
		Unknown:        2,
		Unterminated:   1,
		TokensByKind:   map[string]int{},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Units:             3")
	assert.Contains(t, result, "Unknown:           2")
	assert.Contains(t, result, "Unterminated:      1")
	assert.Contains(t, result, "unterminated branches")
}

func TestFormatSummary_UnknownOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 1, Tokens: 2, Unknown: 1})

	assert.Contains(t, result, "Tokenized with unknown text")
}

func TestFormatSummaryOneLine_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 1,
		Tokens:         1,
		TokensByKind:   map[string]int{"ident": 1},
	}

	assert.Equal(t, "1 token (1 kind) in 1 file, no problems\n", styles.FormatSummaryOneLine(stats))
}

func TestFormatSummaryOneLine_Problems(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		FilesErrored:   2,
		Tokens:         42,
		Unknown:        2,
		Unterminated:   1,
		TokensByKind:   map[string]int{"a": 1, "b": 1},
	}

	assert.Equal(t,
		"42 tokens (2 kinds) in 3 files, 2 unknown, 1 unterminated, 2 files failed\n",
		styles.FormatSummaryOneLine(stats))
}

func TestTopKinds(t *testing.T) {
	t.Parallel()

	byKind := map[string]int{"ident": 5, "paren": 2, "number": 5, "op": 1}

	top := pretty.TopKinds(byKind, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "ident", top[0].Key)
	assert.Equal(t, "number", top[1].Key)

	assert.Len(t, pretty.TopKinds(byKind, 0), 4)
	assert.Empty(t, pretty.TopKinds(nil, 3))
}
