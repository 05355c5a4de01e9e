// Package convert ingests archived chat exports (Claude or ChatGPT) and
// produces a dated vault of per-message markdown files with injected
// hashtags, extracted code snippets, and JSON indexes.
package convert

// Conversation is the normalized conversation shape. Claude exports decode
// into it directly; ChatGPT exports are flattened into it first.
type Conversation struct {
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
	Account      Account   `json:"account"`
	ChatMessages []Message `json:"chat_messages"`
}

// Account identifies the exporting account.
type Account struct {
	UUID string `json:"uuid"`
}

// Message is one chat message.
type Message struct {
	UUID        string        `json:"uuid"`
	Sender      string        `json:"sender"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Text        string        `json:"text"`
	Content     []ContentItem `json:"content"`
	Attachments []Attachment  `json:"attachments"`
	Files       []FileRef     `json:"files"`
}

// ContentItem is one structured content block within a message.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Attachment describes an attached document.
type Attachment struct {
	FileName         string `json:"file_name"`
	FileType         string `json:"file_type"`
	FileSize         int64  `json:"file_size"`
	ExtractedContent string `json:"extracted_content,omitempty"`
}

// FileRef references an uploaded file.
type FileRef struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Project is a Claude project with its knowledge documents.
type Project struct {
	UUID             string  `json:"uuid"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	IsPrivate        bool    `json:"is_private"`
	IsStarterProject bool    `json:"is_starter_project"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	Creator          Account `json:"creator"`
	PromptTemplate   string  `json:"prompt_template"`
	Docs             []Doc   `json:"docs"`
}

// Doc is one project knowledge document.
type Doc struct {
	UUID     string `json:"uuid"`
	FileName string `json:"filename"`
	Content  string `json:"content"`
}

// IndexEntry is one row of the conversations/projects index files.
type IndexEntry struct {
	Path          string   `json:"path"`
	UUID          string   `json:"uuid"`
	Name          string   `json:"name"`
	CreatedAt     string   `json:"created_at"`
	MessageCount  int      `json:"message_count,omitempty"`
	HasMarkdown   bool     `json:"has_markdown"`
	MarkdownFiles []string `json:"markdown_files"`
	Keywords      []string `json:"keywords"`
}

// DateInfo carries the parsed conversation date for folder layout and
// metadata footers.
type DateInfo struct {
	Year      string
	Month     string // numeric, zero-padded
	MonthName string // lowercase English month name
	Day       string
}
