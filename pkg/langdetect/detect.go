// Package langdetect guesses the language of an input so a matching rule
// preset can be chosen. It uses go-enry for filename, shebang and
// classifier based detection, with a few content patterns for short
// snippets such as Markdown code blocks.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by the detectors. They are lower case go-enry
// names so they can be matched against preset language lists.
const (
	langGo         = "go"
	langC          = "c"
	langJavaScript = "javascript"
	langJSON       = "json"
	langLisp       = "common lisp"
	langScheme     = "scheme"
	langText       = "text"
	langBash       = "bash"
)

// Unknown is returned when no language could be determined.
const Unknown = langText

// classifierCandidates restricts the enry classifier to languages that
// matter for preset selection.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "C", "C++", "Java", "JavaScript", "TypeScript", "Rust",
	"JSON", "Common Lisp", "Scheme", "Clojure", "Python", "Shell",
}

// DetectFile returns the language for a named file. The name is tried
// first (extension and well-known filenames), then the content.
func DetectFile(filename string, content []byte) string {
	if filename != "" && filename != "-" {
		if lang, safe := enry.GetLanguageByExtension(filename); safe && lang != "" {
			return normalize(lang)
		}
		if lang, safe := enry.GetLanguageByFilename(filepath.Base(filename)); safe && lang != "" {
			return normalize(lang)
		}
	}
	return Detect(content)
}

// Detect returns the detected language for content alone.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// FromFence maps a Markdown fence info string to a language name.
func FromFence(info string) string {
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if i := strings.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	if lang, ok := enry.GetLanguageByAlias(info); ok {
		return normalize(lang)
	}
	return strings.ToLower(info)
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return langGo
	case bytes.HasPrefix(trimmed, []byte("#include")) || strings.Contains(text, "int main("):
		return langC
	case isJSON(trimmed):
		return langJSON
	case bytes.HasPrefix(trimmed, []byte("(define")):
		return langScheme
	case bytes.HasPrefix(trimmed, []byte("(defun")) || bytes.HasPrefix(trimmed, []byte("(defmacro")):
		return langLisp
	case strings.Contains(text, "console.log") || strings.Contains(text, "=> {"):
		return langJavaScript
	}
	return ""
}

// isJSON reports whether trimmed looks like a JSON object or array.
func isJSON(trimmed []byte) bool {
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if (first != '{' || last != '}') && (first != '[' || last != ']') {
		return false
	}
	return bytes.Contains(trimmed, []byte(`"`)) || bytes.Equal(trimmed, []byte("{}")) || bytes.Equal(trimmed, []byte("[]"))
}

// normalize converts go-enry language names to lower case names.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
