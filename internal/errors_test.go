package internal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	cause := errors.New("disk gone")
	err := &StorageError{Path: "/tmp/MSG.db", Op: "open", Err: cause}

	if !strings.Contains(err.Error(), "/tmp/MSG.db") || !strings.Contains(err.Error(), "open") {
		t.Errorf("Error() = %q, want path and op", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not reach the cause")
	}
}

func TestInputError(t *testing.T) {
	cause := errors.New("odd length")
	err := &InputError{Field: "hex", Value: "abc", Err: cause}

	if !strings.Contains(err.Error(), "hex") {
		t.Errorf("Error() = %q, want field name", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not reach the cause")
	}
}

func TestExportError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &ExportError{Format: "json", Path: "/out/chat.json", Err: cause}

	if !strings.Contains(err.Error(), "json") || !strings.Contains(err.Error(), "/out/chat.json") {
		t.Errorf("Error() = %q, want format and path", err.Error())
	}

	wrapped := fmt.Errorf("export run: %w", err)
	var eerr *ExportError
	if !errors.As(wrapped, &eerr) {
		t.Error("errors.As() did not find *ExportError through wrapping")
	}
}
