package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindJoinURL(t *testing.T) {
	kind := Kind{
		Slug:              "bands",
		InviteURLTemplate: "https://example.com/bands/join/{key}",
	}

	assert.Equal(t, "https://example.com/bands/join/abc123", kind.JoinURL("abc123"))
}

func TestKindJoinURLWithoutPlaceholder(t *testing.T) {
	kind := Kind{InviteURLTemplate: "https://example.com/join"}

	assert.Equal(t, "https://example.com/join", kind.JoinURL("abc123"))
}
