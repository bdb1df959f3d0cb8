package auth

import "context"

// StaticChecker maps tokens to users from a fixed table. Used in tests and local dev.
type StaticChecker struct {
	Sessions map[string]string
}

func NewStaticChecker() *StaticChecker {
	return &StaticChecker{
		Sessions: map[string]string{},
	}
}

func (c *StaticChecker) UserForToken(_ context.Context, token string) (string, bool, error) {
	userID, ok := c.Sessions[token]
	return userID, ok, nil
}
