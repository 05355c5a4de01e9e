package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxFilenameLength bounds sanitized file names.
const maxFilenameLength = 50

var (
	unsafeChars     = regexp.MustCompile(`[<>:"/\\|?*]`)
	collapseSpacing = regexp.MustCompile(`[_\s]+`)

	headerPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	ruleLinePattern  = regexp.MustCompile(`(?m)^\*{3,}$|^-{3,}$|^_{3,}$`)
	codeBlockRegex   = regexp.MustCompile("(?s)```(\\w*)\n(.*?)```")
	inlineCodeRegex  = regexp.MustCompile("`[^`]+`")
	linkPattern      = regexp.MustCompile(`\[.+?\]\(.+?\)`)
	imagePattern     = regexp.MustCompile(`!\[.*?\]\(.+?\)`)
	bulletPattern    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedPattern   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	boldPattern      = regexp.MustCompile(`\*\*[^*]+\*\*`)
	italicPattern    = regexp.MustCompile(`\*[^*]+\*`)
	quotePattern     = regexp.MustCompile(`(?m)^>\s+`)
	tableRowPattern  = regexp.MustCompile(`\|.*\|.*\|`)
	leadingH1Pattern = regexp.MustCompile(`^#\s+`)
)

// markdownIndicators are heuristics for markdown formatting; a text is
// considered markdown when at least two fire, or when it has a fenced
// code block.
var markdownIndicators = []*regexp.Regexp{
	headerPattern, ruleLinePattern, codeBlockRegex, inlineCodeRegex,
	linkPattern, imagePattern, bulletPattern, orderedPattern,
	boldPattern, italicPattern, quotePattern, tableRowPattern,
}

// DetectMarkdown reports whether text contains significant markdown
// formatting worth extracting into its own file.
func DetectMarkdown(text string) bool {
	if len(text) < 20 {
		return false
	}
	if strings.Contains(text, "```") {
		return true
	}

	hits := 0
	for _, pattern := range markdownIndicators {
		if pattern.MatchString(text) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

// SanitizeFilename converts an arbitrary string into a safe file name.
func SanitizeFilename(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	name = collapseSpacing.ReplaceAllString(name, "_")
	name = strings.Trim(name, " ._")
	if len(name) > maxFilenameLength {
		name = strings.TrimRight(name[:maxFilenameLength], " ._")
	}
	if name == "" {
		return "unnamed"
	}
	return name
}

// HumanizeTitle converts an underscored title to a readable one,
// capitalizing only all-lowercase words so acronyms survive.
func HumanizeTitle(title string) string {
	words := strings.Fields(strings.ReplaceAll(title, "_", " "))
	for i, word := range words {
		if word == strings.ToLower(word) {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// TitleFromMarkdown pulls a title from the first header, or the first
// substantial line, of markdown content.
func TitleFromMarkdown(text, fallback string) string {
	if m := headerPattern.FindStringSubmatch(text); m != nil {
		return SanitizeFilename(strings.TrimSpace(m[1]))
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") && len(line) > 5 {
			if len(line) > maxFilenameLength {
				line = line[:maxFilenameLength]
			}
			return SanitizeFilename(line)
		}
	}
	return fallback
}

// CodeBlock is one fenced code block extracted from markdown.
type CodeBlock struct {
	Language string
	Code     string
}

// ExtractCodeBlocks returns all fenced code blocks in text.
func ExtractCodeBlocks(text string) []CodeBlock {
	matches := codeBlockRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		lang := m[1]
		if lang == "" {
			lang = "txt"
		}
		blocks = append(blocks, CodeBlock{
			Language: strings.ToLower(lang),
			Code:     strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// langExtensions maps fence languages to snippet file extensions.
var langExtensions = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"java":       "java",
	"cpp":        "cpp",
	"c":          "c",
	"go":         "go",
	"rust":       "rs",
	"bash":       "sh",
	"shell":      "sh",
	"sql":        "sql",
	"html":       "html",
	"css":        "css",
	"json":       "json",
	"yaml":       "yaml",
	"yml":        "yml",
	"xml":        "xml",
	"markdown":   "md",
}

// SaveCodeSnippets writes each code block of text into a code_snippets
// directory next to the markdown file.
func SaveCodeSnippets(text, baseDir string) ([]string, error) {
	blocks := ExtractCodeBlocks(text)
	if len(blocks) == 0 {
		return nil, nil
	}

	snippetsDir := filepath.Join(baseDir, "code_snippets")
	if err := os.MkdirAll(snippetsDir, 0755); err != nil {
		return nil, err
	}

	var saved []string
	for i, block := range blocks {
		ext, ok := langExtensions[block.Language]
		if !ok {
			ext = "txt"
		}
		name := fmt.Sprintf("snippet_%02d.%s", i, ext)
		if err := os.WriteFile(filepath.Join(snippetsDir, name), []byte(block.Code), 0644); err != nil {
			return saved, err
		}
		saved = append(saved, name)
	}
	return saved, nil
}

// EnhanceMarkdown wraps message content with a title header, the hashtag
// footer (conversation tag first for grouping, then keyword tags), and a
// metadata table.
func EnhanceMarkdown(content, title, convTag string, keywords []string, date DateInfo, uuidShort string) string {
	var sb strings.Builder

	if title != "" && !leadingH1Pattern.MatchString(content) {
		sb.WriteString("# " + title + "\n\n")
	}
	sb.WriteString(content)

	hashtags := make([]string, 0, len(keywords)+1)
	if convTag != "" {
		hashtags = append(hashtags, "#"+convTag)
	}
	for _, kw := range keywords {
		hashtags = append(hashtags, "#"+strings.ReplaceAll(kw, " ", "-"))
	}
	if len(hashtags) > 0 {
		sb.WriteString("\n\n---\n\n" + strings.Join(hashtags, " "))
	}

	sb.WriteString("\n\n---\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	if date.Year != "" {
		fmt.Fprintf(&sb, "| Date | %s-%s-%s |\n", date.Year, capitalize(date.MonthName), date.Day)
	}
	if uuidShort != "" {
		fmt.Fprintf(&sb, "| Conversation ID | %s |\n", uuidShort)
	}

	return sb.String()
}

// ConversationTag builds the unique per-conversation grouping tag.
func ConversationTag(title, uuidShort string) string {
	slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return "conv-" + slug + "-" + uuidShort
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
