package phonenumber

import (
	"errors"
	"testing"

	"github.com/fieldmaker/verify-backend/internal/apperr"
)

func TestParseResolvesAllInputShapesToOneCanonicalForm(t *testing.T) {
	inputs := []string{
		"+90 555 123 4567",
		"90 555 123 4567",
		"0555 123 4567",
		"5551234567",
		"+90-555-123-45-67",
		"0 (555) 123 45 67",
	}

	for _, in := range inputs {
		p, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		if got := p.Canonical(); got != "905551234567" {
			t.Fatalf("Parse(%q).Canonical() = %q, want %q", in, got, "905551234567")
		}
		if got := p.Domestic(); got != "5551234567" {
			t.Fatalf("Parse(%q).Domestic() = %q, want %q", in, got, "5551234567")
		}
	}
}

func TestParseRejectsInvalidNumbers(t *testing.T) {
	inputs := []string{
		"",
		"555 123",            // wrong digit count
		"2121234567",         // landline, not a mobile
		"5951234567",         // unknown operator prefix
		"905551234",          // too short with country code
		"+90 555 123 456 78", // too long
		"abc555def1234567",
	}

	for _, in := range inputs {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected an error, got none", in)
		}
		if !errors.Is(err, apperr.ErrInvalidPhoneNumber) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidPhoneNumber", in, err)
		}
	}
}

func TestFormats(t *testing.T) {
	p := MustParse("0555 123 4567")

	if got := p.ToE164(); got != "+905551234567" {
		t.Fatalf("ToE164() = %q, want %q", got, "+905551234567")
	}
	if got := p.String(); got != "905551234567" {
		t.Fatalf("String() = %q, want %q", got, "905551234567")
	}
}
