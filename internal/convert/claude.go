package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
	"github.com/aaronsb/claude-knowledge-converter/internal/keywords"
	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
)

// Summary reports what a conversion run produced.
type Summary struct {
	Conversations     int       `json:"conversations"`
	Projects          int       `json:"projects"`
	MessagesTotal     int       `json:"messages_total"`
	MarkdownFiles     int       `json:"markdown_files"`
	CodeSnippets      int       `json:"code_snippets"`
	Errors            int       `json:"errors"`
	CompletedAt       time.Time `json:"completed_at"`
	ConversationIndex string    `json:"conversation_index,omitempty"`
	ProjectIndex      string    `json:"project_index,omitempty"`
}

// Converter turns a Claude export into a dated vault of markdown and JSON
// files. ChatGPT exports are normalized into the same conversation shape
// first, then flow through the same path.
type Converter struct {
	log       *logging.Logger
	vaultRoot string
	extractor *keywords.Extractor
	maxKw     int

	entries []IndexEntry
	summary Summary
}

// NewConverter creates a converter writing under vaultRoot.
func NewConverter(vaultRoot string, maxKeywords int, log *logging.Logger) *Converter {
	if maxKeywords <= 0 {
		maxKeywords = keywords.DefaultMaxKeywords
	}
	return &Converter{
		log:       log,
		vaultRoot: vaultRoot,
		extractor: keywords.NewExtractor(),
		maxKw:     maxKeywords,
	}
}

// Entries returns the index entries produced so far, one per conversation.
func (c *Converter) Entries() []IndexEntry { return c.entries }

// ConvertConversations streams conversations.json from src and writes each
// conversation into the vault. Individual malformed conversations are
// logged and skipped; a missing or undecodable file is fatal.
func (c *Converter) ConvertConversations(src Source) (*Summary, error) {
	r, err := src.Open("conversations.json")
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.ExportUnreadable,
			"export has no conversations.json", err)
	}
	defer r.Close()

	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return nil, ckcerrors.New(ckcerrors.ExportMalformed,
			"conversations.json is not a JSON array", err)
	}

	outDir := filepath.Join(c.vaultRoot, "conversations")
	for dec.More() {
		var conv Conversation
		if err := dec.Decode(&conv); err != nil {
			return nil, ckcerrors.New(ckcerrors.ExportMalformed,
				"failed to decode conversation", err)
		}
		if err := c.saveConversation(&conv, outDir, "claude"); err != nil {
			c.summary.Errors++
			c.log.Warn("skipping conversation", map[string]interface{}{
				"uuid":  conv.UUID,
				"error": err.Error(),
			})
		}
	}

	indexPath := filepath.Join(c.vaultRoot, "conversations_index.json")
	if err := c.writeIndex(indexPath); err != nil {
		return nil, err
	}
	c.summary.ConversationIndex = indexPath
	c.summary.CompletedAt = time.Now().UTC()

	c.log.Info("conversion complete", map[string]interface{}{
		"conversations": c.summary.Conversations,
		"markdown":      c.summary.MarkdownFiles,
		"snippets":      c.summary.CodeSnippets,
		"errors":        c.summary.Errors,
	})
	return &c.summary, nil
}

// ConvertProjects converts projects.json, if present, into a projects tree
// with per-document markdown. A missing projects.json is not an error.
func (c *Converter) ConvertProjects(src Source) error {
	r, err := src.Open("projects.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ckcerrors.New(ckcerrors.ExportUnreadable, "cannot open projects.json", err)
	}
	defer r.Close()

	var projects []Project
	if err := json.NewDecoder(r).Decode(&projects); err != nil {
		return ckcerrors.New(ckcerrors.ExportMalformed, "failed to decode projects.json", err)
	}

	projectsDir := filepath.Join(c.vaultRoot, "projects")
	var index []IndexEntry
	for i := range projects {
		entry, err := c.saveProject(&projects[i], projectsDir)
		if err != nil {
			c.summary.Errors++
			c.log.Warn("skipping project", map[string]interface{}{
				"uuid":  projects[i].UUID,
				"error": err.Error(),
			})
			continue
		}
		index = append(index, *entry)
		c.summary.Projects++
	}

	indexPath := filepath.Join(c.vaultRoot, "projects_index.json")
	if err := writeJSON(indexPath, index); err != nil {
		return err
	}
	c.summary.ProjectIndex = indexPath
	return nil
}

// WriteSummary persists the conversion summary into the vault root.
func (c *Converter) WriteSummary() (string, error) {
	path := filepath.Join(c.vaultRoot, "conversion_summary.json")
	if err := writeJSON(path, c.summary); err != nil {
		return "", err
	}
	return path, nil
}

// parseDate extracts the date layout components from an RFC 3339 timestamp.
// Unparseable timestamps fall back to an "unknown" bucket rather than
// failing the conversation.
func parseDate(createdAt string) DateInfo {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return DateInfo{Year: "unknown", Month: "unknown", MonthName: "unknown", Day: "unknown"}
	}
	return DateInfo{
		Year:      t.Format("2006"),
		Month:     t.Format("01"),
		MonthName: strings.ToLower(t.Format("January")),
		Day:       t.Format("02"),
	}
}

// folderName returns the dated folder path for a conversation,
// year/MM-monthname/DD/title_uuid8.
func (c *Converter) conversationFolder(outDir string, conv *Conversation, title string, date DateInfo) string {
	monthDir := date.Month + "-" + capitalize(date.MonthName)
	if date.Month == "unknown" {
		monthDir = "unknown"
	}
	return filepath.Join(outDir, date.Year, monthDir, date.Day,
		fmt.Sprintf("%s_%s", title, shortUUID(conv.UUID)))
}

func shortUUID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// conversationTitle picks a folder-safe title: the conversation name, a
// prefix of the first message, or a uuid-based fallback.
func conversationTitle(conv *Conversation) string {
	name := strings.TrimSpace(conv.Name)
	if name == "" && len(conv.ChatMessages) > 0 {
		text := conv.ChatMessages[0].Text
		if len(text) > 50 {
			text = text[:50]
		}
		name = text
	}
	if name == "" {
		name = "conversation_" + shortUUID(conv.UUID)
	}
	return SanitizeFilename(name)
}

// gatherText joins everything keyword extraction should see: the
// conversation name, message texts, and structured content blocks.
func gatherText(conv *Conversation) string {
	var parts []string
	if conv.Name != "" {
		parts = append(parts, conv.Name)
	}
	for i := range conv.ChatMessages {
		msg := &conv.ChatMessages[i]
		if msg.Text != "" {
			parts = append(parts, msg.Text)
		}
		for _, item := range msg.Content {
			if item.Text != "" {
				parts = append(parts, item.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// messageMetadata is the per-message JSON written into messages/.
type messageMetadata struct {
	UUID         string `json:"uuid"`
	Sender       string `json:"sender"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	Text         string `json:"text"`
	HasFiles     bool   `json:"has_files"`
	HasAttach    bool   `json:"has_attachments"`
	ContentCount int    `json:"content_count"`
	Platform     string `json:"platform"`
	MarkdownFile string `json:"markdown_file,omitempty"`
}

// conversationMetadata is the per-conversation metadata.json.
type conversationMetadata struct {
	UUID          string   `json:"uuid"`
	Name          string   `json:"name"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	AccountUUID   string   `json:"account_uuid"`
	MessageCount  int      `json:"message_count"`
	HasMarkdown   bool     `json:"has_markdown_content"`
	Keywords      []string `json:"keywords"`
	MarkdownFiles []string `json:"markdown_files"`
	Source        string   `json:"source"`
}

func (c *Converter) saveConversation(conv *Conversation, outDir, platform string) error {
	if conv.UUID == "" {
		return ckcerrors.New(ckcerrors.ExportMalformed, "conversation has no uuid", nil)
	}

	date := parseDate(conv.CreatedAt)
	title := conversationTitle(conv)
	humanTitle := HumanizeTitle(title)
	convFolder := c.conversationFolder(outDir, conv, title, date)
	if err := os.MkdirAll(filepath.Join(convFolder, "messages"), 0755); err != nil {
		return err
	}

	convTag := ConversationTag(humanTitle, shortUUID(conv.UUID))

	fullText := gatherText(conv)
	var convKeywords []string
	if fullText != "" {
		convKeywords = c.extractor.Extract(fullText, c.maxKw)
		c.extractor.UpdateCorpusStats(fullText)
	}

	meta := conversationMetadata{
		UUID:         conv.UUID,
		Name:         conv.Name,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
		AccountUUID:  conv.Account.UUID,
		MessageCount: len(conv.ChatMessages),
		Keywords:     convKeywords,
		Source:       platform,
	}

	for idx := range conv.ChatMessages {
		msg := &conv.ChatMessages[idx]
		mdFile, snippets, err := c.saveMessage(msg, idx, convFolder, humanTitle, convTag, convKeywords, date, shortUUID(conv.UUID), platform)
		if err != nil {
			return err
		}
		if mdFile != "" {
			meta.HasMarkdown = true
			meta.MarkdownFiles = append(meta.MarkdownFiles, mdFile)
			c.summary.MarkdownFiles++
		}
		c.summary.CodeSnippets += snippets
		c.summary.MessagesTotal++
	}

	if err := writeJSON(filepath.Join(convFolder, "metadata.json"), meta); err != nil {
		return err
	}

	rel, err := filepath.Rel(c.vaultRoot, convFolder)
	if err != nil {
		rel = convFolder
	}
	c.entries = append(c.entries, IndexEntry{
		Path:          rel,
		UUID:          conv.UUID,
		Name:          conv.Name,
		CreatedAt:     conv.CreatedAt,
		MessageCount:  len(conv.ChatMessages),
		HasMarkdown:   meta.HasMarkdown,
		MarkdownFiles: meta.MarkdownFiles,
		Keywords:      convKeywords,
	})
	c.summary.Conversations++
	return nil
}

// saveMessage writes the message JSON and, when the text is markdown, an
// enhanced markdown file plus extracted code snippets. Returns the markdown
// file name (empty if none) and the snippet count.
func (c *Converter) saveMessage(msg *Message, idx int, convFolder, humanTitle, convTag string,
	convKeywords []string, date DateInfo, uuidShort, platform string) (string, int, error) {

	msgID := shortUUID(msg.UUID)
	if msgID == "" {
		msgID = fmt.Sprintf("%04d", idx)
	}

	meta := messageMetadata{
		UUID:         msg.UUID,
		Sender:       msg.Sender,
		CreatedAt:    msg.CreatedAt,
		UpdatedAt:    msg.UpdatedAt,
		Text:         msg.Text,
		HasFiles:     len(msg.Files) > 0,
		HasAttach:    len(msg.Attachments) > 0 || len(msg.Files) > 0,
		ContentCount: len(msg.Content),
		Platform:     platform,
	}

	snippets := 0
	mdFile := ""
	if msg.Text != "" && DetectMarkdown(msg.Text) {
		msgTitle := fmt.Sprintf("%s - %03d %s Message", humanTitle, idx, capitalize(msg.Sender))
		mdFile = fmt.Sprintf("%s-%03d_%s_Message.md",
			strings.ReplaceAll(humanTitle, " ", "_"), idx, capitalize(msg.Sender))
		content := EnhanceMarkdown(msg.Text, msgTitle, convTag, convKeywords, date, uuidShort)
		if err := os.WriteFile(filepath.Join(convFolder, mdFile), []byte(content), 0644); err != nil {
			return "", 0, err
		}
		meta.MarkdownFile = mdFile

		saved, err := SaveCodeSnippets(msg.Text, convFolder)
		if err != nil {
			return "", 0, err
		}
		snippets = len(saved)
	}

	msgFile := fmt.Sprintf("%03d_%s_%s.json", idx, msg.Sender, msgID)
	if err := writeJSON(filepath.Join(convFolder, "messages", msgFile), meta); err != nil {
		return "", 0, err
	}

	if len(msg.Content) > 0 {
		path := filepath.Join(convFolder, "messages", fmt.Sprintf("%03d_content.json", idx))
		if err := writeJSON(path, msg.Content); err != nil {
			return "", 0, err
		}
	}
	if len(msg.Attachments) > 0 {
		path := filepath.Join(convFolder, "messages", fmt.Sprintf("%03d_attachments.json", idx))
		if err := writeJSON(path, msg.Attachments); err != nil {
			return "", 0, err
		}
	}

	return mdFile, snippets, nil
}

// saveProject writes one project's knowledge documents as markdown files.
func (c *Converter) saveProject(p *Project, projectsDir string) (*IndexEntry, error) {
	if p.UUID == "" {
		return nil, ckcerrors.New(ckcerrors.ExportMalformed, "project has no uuid", nil)
	}

	name := SanitizeFilename(p.Name)
	if p.Name == "" {
		name = "project_" + shortUUID(p.UUID)
	}
	folder := filepath.Join(projectsDir, fmt.Sprintf("%s_%s", name, shortUUID(p.UUID)))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	date := parseDate(p.CreatedAt)
	humanTitle := HumanizeTitle(name)
	projTag := ConversationTag(humanTitle, shortUUID(p.UUID))

	var allText []string
	if p.Description != "" {
		allText = append(allText, p.Description)
	}
	for i := range p.Docs {
		allText = append(allText, p.Docs[i].Content)
	}
	fullText := strings.Join(allText, " ")
	var projKeywords []string
	if fullText != "" {
		projKeywords = c.extractor.Extract(fullText, c.maxKw)
		c.extractor.UpdateCorpusStats(fullText)
	}

	var mdFiles []string
	for i := range p.Docs {
		doc := &p.Docs[i]
		docTitle := TitleFromMarkdown(doc.Content, SanitizeFilename(doc.FileName))
		mdName := fmt.Sprintf("%02d_%s.md", i, docTitle)
		content := EnhanceMarkdown(doc.Content, HumanizeTitle(docTitle), projTag, projKeywords, date, shortUUID(p.UUID))
		if err := os.WriteFile(filepath.Join(folder, mdName), []byte(content), 0644); err != nil {
			return nil, err
		}
		mdFiles = append(mdFiles, mdName)
		c.summary.MarkdownFiles++
	}

	projMeta := map[string]interface{}{
		"uuid":           p.UUID,
		"name":           p.Name,
		"description":    p.Description,
		"created_at":     p.CreatedAt,
		"updated_at":     p.UpdatedAt,
		"doc_count":      len(p.Docs),
		"keywords":       projKeywords,
		"markdown_files": mdFiles,
	}
	if err := writeJSON(filepath.Join(folder, "metadata.json"), projMeta); err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(c.vaultRoot, folder)
	if err != nil {
		rel = folder
	}
	return &IndexEntry{
		Path:          rel,
		UUID:          p.UUID,
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		HasMarkdown:   len(mdFiles) > 0,
		MarkdownFiles: mdFiles,
		Keywords:      projKeywords,
	}, nil
}

func (c *Converter) writeIndex(path string) error {
	return writeJSON(path, c.entries)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
