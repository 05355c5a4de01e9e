package convert

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
)

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

const claudeExport = `[
  {
    "uuid": "11112222-3333-4444-5555-666677778888",
    "name": "Graph Color Planning",
    "created_at": "2024-03-07T10:15:00Z",
    "updated_at": "2024-03-07T11:00:00Z",
    "account": {"uuid": "acct-1"},
    "chat_messages": [
      {
        "uuid": "aaaa1111-0000-0000-0000-000000000000",
        "sender": "human",
        "created_at": "2024-03-07T10:15:00Z",
        "updated_at": "2024-03-07T10:15:00Z",
        "text": "How should I color the graph clusters for my obsidian vault?",
        "content": [],
        "attachments": [],
        "files": []
      },
      {
        "uuid": "bbbb2222-0000-0000-0000-000000000000",
        "sender": "assistant",
        "created_at": "2024-03-07T10:16:00Z",
        "updated_at": "2024-03-07T10:16:00Z",
        "text": "# Color Strategy\n\n- group by tag frequency\n- assign a colormap\n\n` + "```python\\nprint('demo')\\n```" + `",
        "content": [],
        "attachments": [],
        "files": []
      }
    ]
  }
]`

func writeClaudeExport(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "conversations.json"), []byte(claudeExport), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertConversationsLayout(t *testing.T) {
	exportDir := t.TempDir()
	vault := t.TempDir()
	writeClaudeExport(t, exportDir)

	src, err := OpenSource(exportDir)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	c := NewConverter(vault, 5, quietLogger())
	summary, err := c.ConvertConversations(src)
	if err != nil {
		t.Fatalf("ConvertConversations: %v", err)
	}

	if summary.Conversations != 1 {
		t.Errorf("Conversations = %d, want 1", summary.Conversations)
	}
	if summary.MessagesTotal != 2 {
		t.Errorf("MessagesTotal = %d, want 2", summary.MessagesTotal)
	}
	if summary.MarkdownFiles != 1 {
		t.Errorf("MarkdownFiles = %d, want 1", summary.MarkdownFiles)
	}
	if summary.CodeSnippets != 1 {
		t.Errorf("CodeSnippets = %d, want 1", summary.CodeSnippets)
	}

	// Dated layout: conversations/2024/03-March/07/<title>_<uuid8>
	convFolder := filepath.Join(vault, "conversations", "2024", "03-March", "07",
		"Graph_Color_Planning_11112222")
	if _, err := os.Stat(convFolder); err != nil {
		t.Fatalf("conversation folder missing: %v", err)
	}

	var meta conversationMetadata
	data, err := os.ReadFile(filepath.Join(convFolder, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.UUID != "11112222-3333-4444-5555-666677778888" || !meta.HasMarkdown {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Source != "claude" {
		t.Errorf("source = %q, want claude", meta.Source)
	}

	// The assistant message was markdown: enhanced file with the conv tag
	if len(meta.MarkdownFiles) != 1 {
		t.Fatalf("markdown files = %v", meta.MarkdownFiles)
	}
	mdData, err := os.ReadFile(filepath.Join(convFolder, meta.MarkdownFiles[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mdData), "#conv-graph-color-planning-11112222") {
		t.Error("markdown file missing conversation grouping tag")
	}

	// Code snippet extracted next to the markdown
	if _, err := os.Stat(filepath.Join(convFolder, "code_snippets", "snippet_00.py")); err != nil {
		t.Errorf("code snippet missing: %v", err)
	}

	// Per-message JSON under messages/
	if _, err := os.Stat(filepath.Join(convFolder, "messages", "000_human_aaaa1111.json")); err != nil {
		t.Errorf("message json missing: %v", err)
	}

	// Vault-level index
	var index []IndexEntry
	data, err = os.ReadFile(filepath.Join(vault, "conversations_index.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatal(err)
	}
	if len(index) != 1 || index[0].UUID != meta.UUID || !index[0].HasMarkdown {
		t.Errorf("index = %+v", index)
	}
}

func TestOpenSourceZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "export.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("data-export/conversations.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(claudeExport)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := OpenSource(zipPath)
	if err != nil {
		t.Fatalf("OpenSource(zip): %v", err)
	}
	defer src.Close()

	// Nested top-level folder is resolved transparently
	r, err := src.Open("conversations.json")
	if err != nil {
		t.Fatalf("Open inside zip: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != claudeExport {
		t.Error("zip content mismatch")
	}
}

func TestOpenSourceMissingPath(t *testing.T) {
	if _, err := OpenSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing export path should error")
	}
}

func TestDetectFormat(t *testing.T) {
	claudeDir := t.TempDir()
	writeClaudeExport(t, claudeDir)
	src, err := OpenSource(claudeDir)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	format, err := DetectFormat(src)
	if err != nil {
		t.Fatal(err)
	}
	if format != "claude" {
		t.Errorf("format = %q, want claude", format)
	}

	chatgptDir := t.TempDir()
	chatgptBody := `[{"id":"c1","title":"T","create_time":1709800000.5,"update_time":1709800100.5,"mapping":{}}]`
	if err := os.WriteFile(filepath.Join(chatgptDir, "conversations.json"), []byte(chatgptBody), 0644); err != nil {
		t.Fatal(err)
	}
	src2, err := OpenSource(chatgptDir)
	if err != nil {
		t.Fatal(err)
	}
	defer src2.Close()

	format, err = DetectFormat(src2)
	if err != nil {
		t.Fatal(err)
	}
	if format != "chatgpt" {
		t.Errorf("format = %q, want chatgpt", format)
	}
}

func TestFlattenChatGPT(t *testing.T) {
	rootParent := "client-created-root"
	hiddenTrue := chatgptMeta{Hidden: true}
	ct1 := 1709800000.0
	ct2 := 1709800060.0

	raw := &chatgptConversation{
		ID:         "conv-1",
		Title:      "Mapping Test",
		CreateTime: 1709800000,
		UpdateTime: 1709800200,
		Mapping: map[string]chatgptNode{
			"root": {Parent: &rootParent, Children: []string{"m1"}},
			"m1": {
				Parent:   strPtr("root"),
				Children: []string{"m2", "hidden"},
				Message: &chatgptMessage{
					ID:         "m1",
					Author:     chatgptAuthor{Role: "user"},
					CreateTime: &ct1,
					Content:    chatgptContent{Parts: []json.RawMessage{json.RawMessage(`"first question"`)}},
				},
			},
			"m2": {
				Parent: strPtr("m1"),
				Message: &chatgptMessage{
					ID:         "m2",
					Author:     chatgptAuthor{Role: "tool"},
					CreateTime: &ct2,
					Content:    chatgptContent{Parts: []json.RawMessage{json.RawMessage(`"tool answer"`)}},
				},
			},
			"hidden": {
				Parent: strPtr("m1"),
				Message: &chatgptMessage{
					ID:       "h1",
					Author:   chatgptAuthor{Role: "system"},
					Content:  chatgptContent{Parts: []json.RawMessage{json.RawMessage(`"internal"`)}},
					Metadata: hiddenTrue,
				},
			},
		},
	}

	conv := flattenChatGPT(raw)
	if conv == nil {
		t.Fatal("flattenChatGPT returned nil")
	}
	if conv.UUID != "conv-1" || conv.Name != "Mapping Test" {
		t.Errorf("conversation = %+v", conv)
	}
	if len(conv.ChatMessages) != 2 {
		t.Fatalf("messages = %d, want 2 (hidden dropped)", len(conv.ChatMessages))
	}
	if conv.ChatMessages[0].Sender != "human" {
		t.Errorf("sender = %q, want human", conv.ChatMessages[0].Sender)
	}
	if conv.ChatMessages[1].Sender != "assistant" {
		t.Errorf("tool role should map to assistant, got %q", conv.ChatMessages[1].Sender)
	}
	if conv.ChatMessages[0].CreatedAt >= conv.ChatMessages[1].CreatedAt {
		t.Error("messages should be sorted by timestamp")
	}
	if conv.ChatMessages[0].Text != "first question" {
		t.Errorf("text = %q", conv.ChatMessages[0].Text)
	}
}

func TestFlattenChatGPTGeneratesMissingID(t *testing.T) {
	ct := 1709800000.0
	raw := &chatgptConversation{
		Title: "No ID",
		Mapping: map[string]chatgptNode{
			"m1": {
				Parent: nil,
				Message: &chatgptMessage{
					ID:         "m1",
					Author:     chatgptAuthor{Role: "user"},
					CreateTime: &ct,
					Content:    chatgptContent{Parts: []json.RawMessage{json.RawMessage(`"hello there"`)}},
				},
			},
		},
	}

	conv := flattenChatGPT(raw)
	if conv == nil {
		t.Fatal("flattenChatGPT returned nil")
	}
	if conv.UUID == "" {
		t.Error("missing conversation id should be generated")
	}
}

func TestFlattenChatGPTEmptyTreeDropped(t *testing.T) {
	raw := &chatgptConversation{ID: "c", Title: "Empty", Mapping: map[string]chatgptNode{}}
	if conv := flattenChatGPT(raw); conv != nil {
		t.Errorf("empty mapping should drop the conversation, got %+v", conv)
	}
}

func TestUnixToRFC3339(t *testing.T) {
	if got := unixToRFC3339(0); got != "" {
		t.Errorf("zero timestamp = %q, want empty", got)
	}
	got := unixToRFC3339(1709800000)
	if !strings.HasPrefix(got, "2024-03-07T") || !strings.HasSuffix(got, "Z") {
		t.Errorf("unixToRFC3339 = %q", got)
	}
}

func strPtr(s string) *string { return &s }
