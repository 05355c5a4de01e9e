package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ExportUnreadable indicates the chat export file or archive could not be opened
	ExportUnreadable ErrorCode = "EXPORT_UNREADABLE"
	// ExportMalformed indicates the export JSON did not match any known format
	ExportMalformed ErrorCode = "EXPORT_MALFORMED"
	// TemplateMissing indicates the graph template document was not found or unreadable
	TemplateMissing ErrorCode = "TEMPLATE_MISSING"
	// TemplateInvalid indicates the graph template was not a JSON object
	TemplateInvalid ErrorCode = "TEMPLATE_INVALID"
	// WaterLevelInvalid indicates a user-supplied threshold was non-numeric or below 1
	WaterLevelInvalid ErrorCode = "WATER_LEVEL_INVALID"
	// VaultEmpty indicates the vault contains no markdown files to scan
	VaultEmpty ErrorCode = "VAULT_EMPTY"
	// CatalogError indicates the conversation catalog database failed
	CatalogError ErrorCode = "CATALOG_ERROR"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// CkcError represents a converter error with code, message, and suggestions
type CkcError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new CkcError
func New(code ErrorCode, message string, cause error) *CkcError {
	return &CkcError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *CkcError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CkcError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CkcError) WithDetails(details interface{}) *CkcError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ExportUnreadable: {
		{
			Type:        RunCommand,
			Command:     "ckc convert --input <path-to-export>",
			Safe:        true,
			Description: "Point --input at the export directory or .zip archive",
		},
	},
	TemplateMissing: {
		{
			Type:        RunCommand,
			Command:     "ckc analyze --template <path-to-graph.json>",
			Safe:        true,
			Description: "Supply a graph.json template to merge color groups into",
		},
	},
	VaultEmpty: {
		{
			Type:        RunCommand,
			Command:     "ckc convert",
			Safe:        true,
			Description: "Convert an export first so the vault has markdown files",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
