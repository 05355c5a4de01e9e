package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// tagPattern matches hashtag labels: an ASCII letter followed by letters,
// digits, hyphens, or underscores. Extraction is case-preserving.
var tagPattern = regexp.MustCompile(`#([a-zA-Z][a-zA-Z0-9_-]*)`)

// ConversationTagPrefix marks per-conversation grouping tags.
const ConversationTagPrefix = "conv-"

// patternStopWords are tokens too generic to serve as a file-name pattern.
var patternStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "to": {},
	"in": {}, "for": {}, "and": {}, "or": {}, "but": {},
}

var patternSplitter = regexp.MustCompile(`[-_\s]+`)

// ExtractTags returns all hashtag labels found in content, in order of
// appearance, without the leading '#'.
func ExtractTags(content string) []string {
	matches := tagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// IsConversationTag reports whether a label is a conversation grouping tag.
func IsConversationTag(label string) bool {
	return strings.HasPrefix(label, ConversationTagPrefix)
}

// ExtractFilePattern derives a coarse grouping token from a file name:
// strip the final extension, split the rest on runs of hyphen, underscore,
// or whitespace, and return the first token that is not purely numeric, not
// a stop word, and at least 3 characters long. Returns "" when no token
// qualifies.
func ExtractFilePattern(fileName string) string {
	base := filepath.Base(fileName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, token := range patternSplitter.Split(stem, -1) {
		if len(token) < 3 {
			continue
		}
		if _, stop := patternStopWords[strings.ToLower(token)]; stop {
			continue
		}
		if isNumeric(token) {
			continue
		}
		return token
	}
	return ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
