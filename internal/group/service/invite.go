package service

import (
	"crypto/rand"
	"encoding/hex"
	"net/mail"
	"strings"
	"unicode"

	"github.com/smallbiznis/usergroups/internal/group/domain"
)

// newSecretKey returns a 32-character hex bearer token (128 bits from
// crypto/rand) used to redeem an invitation.
func newSecretKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// parseEmailBatch splits free-text input on commas and whitespace,
// trims and deduplicates the candidates and validates each against the
// address grammar. An empty result or any malformed entry is a
// validation failure.
func parseEmailBatch(raw string) ([]string, error) {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	emails := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		address, err := mail.ParseAddress(token)
		if err != nil {
			return nil, domain.ErrInvalidEmail
		}

		normalized := strings.ToLower(address.Address)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		emails = append(emails, address.Address)
	}

	if len(emails) == 0 {
		return nil, domain.ErrEmptyEmailList
	}
	return emails, nil
}
