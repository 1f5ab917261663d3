package analytics

import (
	"regexp"
	"strings"
)

const (
	// maxContentRunes caps sanitized free text so a single runaway record
	// cannot blow up a render.
	maxContentRunes = 2000

	truncationMarker = "... [content truncated]"
	emptyPlaceholder = "No analysis content available."
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the four markup entities that show up in stored
// AI rationale text.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

// Sanitize strips markup fragments from free text, decodes common entities,
// collapses whitespace and enforces the length cap. Empty input yields a
// fixed placeholder. For input already within the cap the function is
// idempotent.
func Sanitize(text string) string {
	if text == "" {
		return emptyPlaceholder
	}

	clean := tagRe.ReplaceAllString(text, "")
	clean = entityReplacer.Replace(clean)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	if runes := []rune(clean); len(runes) > maxContentRunes {
		clean = string(runes[:maxContentRunes]) + truncationMarker
	}

	if clean == "" {
		return emptyPlaceholder
	}
	return clean
}
