package domain

import "strings"

// Kind carries the per-deployment group configuration. The host passes
// it explicitly into service construction; there is no process-wide
// registry.
type Kind struct {
	// Slug identifies the group kind, e.g. "default" or "bands".
	Slug string
	// InviteURLTemplate composes the join URL sent in invitation
	// emails; "{key}" is replaced with the secret key.
	InviteURLTemplate string
}

// JoinURL renders the invitation join URL for a secret key.
func (k Kind) JoinURL(secretKey string) string {
	return strings.ReplaceAll(k.InviteURLTemplate, "{key}", secretKey)
}
