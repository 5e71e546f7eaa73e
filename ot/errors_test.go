package ot

import "testing"

// TestErrorSeverity verifies the ErrorSeverity String() method.
func TestErrorSeverity(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{ErrorSeverity(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.severity.String()
		if result != tt.expected {
			t.Errorf("ErrorSeverity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

// TestFontError verifies FontError formatting.
func TestFontError(t *testing.T) {
	tests := []struct {
		name     string
		err      FontError
		expected string
	}{
		{
			name: "Error with offset",
			err: FontError{
				Table:    T("fvar"),
				Section:  "Instances",
				Issue:    "buffer too small",
				Severity: SeverityCritical,
				Offset:   1234,
			},
			expected: "[CRITICAL] fvar/Instances at offset 1234: buffer too small",
		},
		{
			name: "Error without offset",
			err: FontError{
				Table:    T("name"),
				Section:  "NameRecords",
				Issue:    "invalid format",
				Severity: SeverityMajor,
			},
			expected: "[MAJOR] name/NameRecords: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("FontError.Error() = %q; want %q", got, tt.expected)
			}
		})
	}
}

// TestFontWarning verifies FontWarning formatting.
func TestFontWarning(t *testing.T) {
	w := FontWarning{Table: T("DSIG"), Issue: "table not interpreted"}
	if got := w.String(); got != "[WARNING] DSIG: table not interpreted" {
		t.Errorf("FontWarning.String() = %q", got)
	}
}

func TestErrorCollector(t *testing.T) {
	ec := &errorCollector{}
	ec.addWarning(T("DSIG"), "table not interpreted", 0)
	ec.addError(T("name"), "Size", "too small", SeverityCritical, 0)
	if len(ec.errors) != 1 || len(ec.warnings) != 1 {
		t.Errorf("expected 1 error and 1 warning, have %d/%d", len(ec.errors), len(ec.warnings))
	}
}
