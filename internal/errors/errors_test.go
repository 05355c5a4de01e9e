package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("open failed")
	err := New(ExportUnreadable, "cannot open export", cause)

	msg := err.Error()
	if !strings.Contains(msg, string(ExportUnreadable)) {
		t.Errorf("message missing code: %s", msg)
	}
	if !strings.Contains(msg, "cannot open export") || !strings.Contains(msg, "open failed") {
		t.Errorf("message missing parts: %s", msg)
	}

	bare := New(VaultEmpty, "no markdown files", nil)
	if strings.Contains(bare.Error(), "<nil>") {
		t.Errorf("nil cause leaked into message: %s", bare.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := New(CatalogError, "query failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through the wrapper")
	}

	var ce *CkcError
	if !errors.As(error(err), &ce) || ce.Code != CatalogError {
		t.Error("errors.As should recover the typed error")
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(TemplateMissing, "no template", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("TemplateMissing should carry suggested fixes")
	}
	if err.SuggestedFixes[0].Type != RunCommand {
		t.Errorf("fix type = %s", err.SuggestedFixes[0].Type)
	}

	plain := New(InternalError, "boom", nil)
	if len(plain.SuggestedFixes) != 0 {
		t.Error("InternalError has no canned fixes")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(WaterLevelInvalid, "bad threshold", nil).
		WithDetails(map[string]interface{}{"input": "-3"})
	if err.Details == nil {
		t.Error("details not attached")
	}
}
