package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectMarkdown(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"fenced code block", "some text\n```go\nfunc main() {}\n```", true},
		{"header plus list", "# Title\n\n- item one\n- item two", true},
		{"bold plus link", "see **this** and [docs](https://example.com) for details", true},
		{"plain prose", "just a short ordinary sentence without any formatting at all", false},
		{"too short", "# hi", false},
		{"single weak indicator", "a sentence with *one emphasized* word only here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMarkdown(tt.text); got != tt.want {
				t.Errorf("DetectMarkdown(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Simple Name", "Simple_Name"},
		{`bad<>:"/\|?*chars`, "bad_chars"},
		{"  trimmed.  ", "trimmed"},
		{"", "unnamed"},
		{"???", "unnamed"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHumanizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"project_setup_notes", "Project Setup Notes"},
		{"API_design_for_CLI", "API Design For CLI"},
		{"already Capitalized", "Already Capitalized"},
	}
	for _, tt := range tests {
		if got := HumanizeTitle(tt.in); got != tt.want {
			t.Errorf("HumanizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleFromMarkdown(t *testing.T) {
	if got := TitleFromMarkdown("## Design Overview\n\nbody", "fallback"); got != "Design_Overview" {
		t.Errorf("header title = %q", got)
	}
	if got := TitleFromMarkdown("A substantial first line\nmore", "fallback"); got != "A_substantial_first_line" {
		t.Errorf("first-line title = %q", got)
	}
	if got := TitleFromMarkdown("", "fallback"); got != "fallback" {
		t.Errorf("empty text title = %q, want fallback", got)
	}
}

func TestExtractCodeBlocks(t *testing.T) {
	text := "intro\n```python\nprint('hi')\n```\nmiddle\n```\nplain text\n```\n"
	blocks := ExtractCodeBlocks(text)
	if len(blocks) != 2 {
		t.Fatalf("len = %d, want 2", len(blocks))
	}
	if blocks[0].Language != "python" || blocks[0].Code != "print('hi')" {
		t.Errorf("blocks[0] = %+v", blocks[0])
	}
	if blocks[1].Language != "txt" {
		t.Errorf("unfenced language = %q, want txt", blocks[1].Language)
	}
}

func TestSaveCodeSnippets(t *testing.T) {
	dir := t.TempDir()
	text := "```go\npackage main\n```\n```mystery\ndata\n```"

	saved, err := SaveCodeSnippets(text, dir)
	if err != nil {
		t.Fatalf("SaveCodeSnippets: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved = %v, want 2 snippets", saved)
	}
	if saved[0] != "snippet_00.go" {
		t.Errorf("saved[0] = %q", saved[0])
	}
	if saved[1] != "snippet_01.txt" {
		t.Errorf("unknown language should fall back to .txt, got %q", saved[1])
	}

	data, err := os.ReadFile(filepath.Join(dir, "code_snippets", "snippet_00.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package main" {
		t.Errorf("snippet content = %q", data)
	}
}

func TestEnhanceMarkdownFooter(t *testing.T) {
	date := DateInfo{Year: "2024", Month: "03", MonthName: "march", Day: "07"}
	out := EnhanceMarkdown("body text", "My Title", "conv-my-title-ab12cd34",
		[]string{"golang", "graph viz"}, date, "ab12cd34")

	if !strings.HasPrefix(out, "# My Title\n") {
		t.Error("missing injected title header")
	}
	tagLine := "#conv-my-title-ab12cd34 #golang #graph-viz"
	if !strings.Contains(out, tagLine) {
		t.Errorf("output missing hashtag footer %q:\n%s", tagLine, out)
	}
	// Conversation tag comes before keyword tags
	convIdx := strings.Index(out, "#conv-my-title-ab12cd34")
	kwIdx := strings.Index(out, "#golang")
	if convIdx == -1 || kwIdx == -1 || convIdx > kwIdx {
		t.Error("conversation tag must precede keyword tags")
	}
	if !strings.Contains(out, "| Date | 2024-March-07 |") {
		t.Errorf("missing metadata date row:\n%s", out)
	}
	if !strings.Contains(out, "| Conversation ID | ab12cd34 |") {
		t.Error("missing conversation id row")
	}
}

func TestEnhanceMarkdownKeepsExistingHeader(t *testing.T) {
	out := EnhanceMarkdown("# Existing\nbody", "Other Title", "", nil, DateInfo{}, "")
	if strings.Contains(out, "# Other Title") {
		t.Error("must not stack a second title over an existing H1")
	}
}

func TestConversationTag(t *testing.T) {
	got := ConversationTag("Project Setup Notes", "ab12cd34")
	if got != "conv-project-setup-notes-ab12cd34" {
		t.Errorf("ConversationTag = %q", got)
	}
}
