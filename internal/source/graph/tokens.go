package graph

import (
	"errors"
	"sync"
)

var ErrNoTokens = errors.New("no access tokens configured")

// TokenRing hands out access tokens from a fixed pool, advancing to the next
// one when the current token is exhausted.
type TokenRing struct {
	mu      sync.Mutex
	tokens  []string
	current int
}

func NewTokenRing(tokens []string) (*TokenRing, error) {
	var pool []string
	for _, t := range tokens {
		if t != "" {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoTokens
	}
	return &TokenRing{tokens: pool}, nil
}

func (r *TokenRing) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[r.current]
}

// Rotate advances to the next token, wrapping around, and returns it.
func (r *TokenRing) Rotate() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = (r.current + 1) % len(r.tokens)
	return r.tokens[r.current]
}

func (r *TokenRing) Len() int {
	return len(r.tokens)
}
