package convert

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
)

// chatgptConversation is the raw ChatGPT export shape. Messages live in a
// branching mapping tree rather than a flat list.
type chatgptConversation struct {
	ID             string                 `json:"id"`
	ConversationID string                 `json:"conversation_id"`
	Title          string                 `json:"title"`
	CreateTime     float64                `json:"create_time"`
	UpdateTime     float64                `json:"update_time"`
	Mapping        map[string]chatgptNode `json:"mapping"`
}

type chatgptNode struct {
	Parent   *string         `json:"parent"`
	Children []string        `json:"children"`
	Message  *chatgptMessage `json:"message"`
}

type chatgptMessage struct {
	ID         string         `json:"id"`
	Author     chatgptAuthor  `json:"author"`
	CreateTime *float64       `json:"create_time"`
	Content    chatgptContent `json:"content"`
	Metadata   chatgptMeta    `json:"metadata"`
}

type chatgptAuthor struct {
	Role string `json:"role"`
}

type chatgptContent struct {
	Parts []json.RawMessage `json:"parts"`
}

type chatgptMeta struct {
	Hidden      bool                `json:"is_visually_hidden_from_conversation"`
	Attachments []chatgptAttachment `json:"attachments"`
}

type chatgptAttachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// senderMap translates ChatGPT author roles to the normalized sender
// vocabulary. Tool output reads like assistant output in the vault.
var senderMap = map[string]string{
	"user":      "human",
	"assistant": "assistant",
	"system":    "system",
	"tool":      "assistant",
}

// ConvertChatGPT streams a ChatGPT conversations.json from src, flattens
// each mapping tree into the normalized conversation shape, and writes it
// through the standard conversation path.
func (c *Converter) ConvertChatGPT(src Source) (*Summary, error) {
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
		var raw chatgptConversation
		if err := dec.Decode(&raw); err != nil {
			return nil, ckcerrors.New(ckcerrors.ExportMalformed,
				"failed to decode conversation", err)
		}

		conv := flattenChatGPT(&raw)
		if conv == nil {
			continue
		}
		if err := c.saveConversation(conv, outDir, "chatgpt"); err != nil {
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
		"errors":        c.summary.Errors,
	})
	return &c.summary, nil
}

// flattenChatGPT converts one raw ChatGPT conversation into the normalized
// shape. Conversations whose trees hold no visible messages are dropped.
func flattenChatGPT(raw *chatgptConversation) *Conversation {
	id := raw.ID
	if id == "" {
		id = raw.ConversationID
	}
	if id == "" {
		id = uuid.NewString()
	}

	title := raw.Title
	if title == "" {
		title = "Untitled Conversation"
	}

	messages := flattenMapping(raw.Mapping)
	if len(messages) == 0 {
		return nil
	}

	return &Conversation{
		UUID:         id,
		Name:         title,
		CreatedAt:    unixToRFC3339(raw.CreateTime),
		UpdatedAt:    unixToRFC3339(raw.UpdateTime),
		Account:      Account{UUID: "chatgpt-account"},
		ChatMessages: messages,
	}
}

// flattenMapping walks the mapping tree depth first from every root and
// returns the visible messages in timestamp order.
func flattenMapping(mapping map[string]chatgptNode) []Message {
	var roots []string
	for id, node := range mapping {
		if node.Parent == nil || *node.Parent == "client-created-root" {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)

	visited := make(map[string]struct{})
	var messages []Message
	for _, root := range roots {
		walkMapping(mapping, root, visited, &messages)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages
}

func walkMapping(mapping map[string]chatgptNode, id string, visited map[string]struct{}, out *[]Message) {
	if _, seen := visited[id]; seen {
		return
	}
	node, ok := mapping[id]
	if !ok {
		return
	}
	visited[id] = struct{}{}

	if node.Message != nil {
		if msg := normalizeMessage(node.Message); msg != nil && msg.Text != "" {
			*out = append(*out, *msg)
		}
	}
	for _, child := range node.Children {
		walkMapping(mapping, child, visited, out)
	}
}

// normalizeMessage converts one ChatGPT message, or returns nil for hidden
// system plumbing.
func normalizeMessage(raw *chatgptMessage) *Message {
	if raw.Metadata.Hidden {
		return nil
	}

	sender, ok := senderMap[raw.Author.Role]
	if !ok {
		sender = raw.Author.Role
	}

	var parts []string
	for _, part := range raw.Content.Parts {
		var s string
		if err := json.Unmarshal(part, &s); err != nil {
			// Multimodal parts are objects; keep their raw JSON as text.
			s = string(part)
		}
		if s != "" && s != "null" {
			parts = append(parts, s)
		}
	}
	text := strings.Join(parts, "\n\n")

	var timestamp string
	if raw.CreateTime != nil {
		timestamp = unixToRFC3339(*raw.CreateTime)
	} else {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	msg := &Message{
		UUID:      raw.ID,
		Sender:    sender,
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
		Text:      text,
	}
	for _, att := range raw.Metadata.Attachments {
		name := att.Name
		if name == "" {
			name = "Unnamed"
		}
		msg.Files = append(msg.Files, FileRef{
			FileName: name,
			FileType: att.MimeType,
			FileSize: att.Size,
		})
	}
	return msg
}

// unixToRFC3339 converts a Unix timestamp with fractional seconds.
func unixToRFC3339(ts float64) string {
	if ts == 0 {
		return ""
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}

// DetectFormat sniffs whether an export's conversations.json is a Claude or
// ChatGPT export by looking for the mapping field on the first element.
func DetectFormat(src Source) (string, error) {
	r, err := src.Open("conversations.json")
	if err != nil {
		return "", ckcerrors.New(ckcerrors.ExportUnreadable,
			"export has no conversations.json", err)
	}
	defer r.Close()

	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return "", ckcerrors.New(ckcerrors.ExportMalformed,
			"conversations.json is not a JSON array", err)
	}
	if !dec.More() {
		return "claude", nil
	}

	var probe struct {
		Mapping map[string]json.RawMessage `json:"mapping"`
		UUID    string                     `json:"uuid"`
	}
	if err := dec.Decode(&probe); err != nil {
		return "", ckcerrors.New(ckcerrors.ExportMalformed,
			fmt.Sprintf("cannot inspect first conversation: %v", err), err)
	}
	if probe.Mapping != nil {
		return "chatgpt", nil
	}
	return "claude", nil
}
