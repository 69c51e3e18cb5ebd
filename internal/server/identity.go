package server

import (
	"fmt"
	"strings"
	"sync"
)

// IdentityResolver binds a connection's credentials to a stable user id.
type IdentityResolver interface {
	ResolveIdentity(token, displayName string) (string, error)
}

// NameIdentity is the in-memory resolver: any non-empty display name is
// accepted and owns the matching user id for the life of the process.
// Tokens, if supplied, must keep matching the name's first token.
type NameIdentity struct {
	mu     sync.Mutex
	tokens map[string]string
}

// NewNameIdentity creates an empty resolver.
func NewNameIdentity() *NameIdentity {
	return &NameIdentity{tokens: make(map[string]string)}
}

// ResolveIdentity implements IdentityResolver.
func (n *NameIdentity) ResolveIdentity(token, displayName string) (string, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return "", fmt.Errorf("display name required")
	}

	userID := strings.ToLower(name)
	n.mu.Lock()
	defer n.mu.Unlock()
	if existing, ok := n.tokens[userID]; ok {
		if existing != token {
			return "", fmt.Errorf("name %q is claimed by another session", name)
		}
	} else {
		n.tokens[userID] = token
	}
	return userID, nil
}
