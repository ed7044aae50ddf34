package service

import (
	"testing"

	"github.com/smallbiznis/usergroups/internal/group/domain"
)

func TestParseEmailBatch(t *testing.T) {
	emails, err := parseEmailBatch("alice@example.com, bob@example.com\ncarol@example.com")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(emails) != 3 {
		t.Fatalf("expected 3 addresses, got %d: %v", len(emails), emails)
	}
	if emails[0] != "alice@example.com" || emails[2] != "carol@example.com" {
		t.Fatalf("unexpected addresses: %v", emails)
	}
}

func TestParseEmailBatchDeduplicates(t *testing.T) {
	emails, err := parseEmailBatch("alice@example.com Alice@Example.com alice@example.com")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("expected case-insensitive dedup to 1 address, got %v", emails)
	}
}

func TestParseEmailBatchRejectsMalformed(t *testing.T) {
	if _, err := parseEmailBatch("alice@example.com not-an-email"); err != domain.ErrInvalidEmail {
		t.Fatalf("expected invalid_email, got %v", err)
	}
}

func TestParseEmailBatchRejectsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", " , ,\n"} {
		if _, err := parseEmailBatch(raw); err != domain.ErrEmptyEmailList {
			t.Fatalf("expected empty_email_list for %q, got %v", raw, err)
		}
	}
}

func TestNewSecretKey(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		key, err := newSecretKey()
		if err != nil {
			t.Fatalf("failed to generate key: %v", err)
		}
		if len(key) != 32 {
			t.Fatalf("expected 32-char key, got %d chars", len(key))
		}
		if _, ok := seen[key]; ok {
			t.Fatalf("generated duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}
}
