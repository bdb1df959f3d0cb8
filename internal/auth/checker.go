package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-session||"
	tokensSetKey     = "liftlog-sessions"
)

var _ Checker = (*SessionChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

// Checker resolves an opaque session token to the id of its user.
type Checker interface {
	UserForToken(ctx context.Context, token string) (userID string, ok bool, err error)
}

// SessionChecker reads sessions written to redis by the token issuer.
// A session value has the form <userID>|<createdAtUnix>.
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

// SessionValue formats a session as the issuer stores it.
func SessionValue(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%s|%d", userID, createdAt.Unix())
}

func (c *SessionChecker) UserForToken(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	val, err := c.redisClient.Get(ctx, SessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session: %w", err)
	}

	userID, createdAt, err := parseSessionValue(val)
	if err != nil {
		log.Warnf("auth: malformed session value for token: %s", err)
		return "", false, nil
	}

	if c.now().Sub(createdAt) > c.ttl {
		return "", false, nil
	}

	return userID, true, nil
}

// ScanAndClean runs through all known sessions and removes the expired and malformed ones.
func (c *SessionChecker) ScanAndClean(ctx context.Context) {
	tokens, err := c.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth scan and clean, get sessions: %s", err)
		return
	}
	if len(tokens) == 0 {
		log.Debugln("auth scan and clean, no sessions")
		return
	}

	removed := 0
	for _, token := range tokens {
		val, err := c.redisClient.Get(ctx, SessionKey(token)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("auth scan and clean, get session: %s", err)
			continue
		}

		if err == nil {
			_, createdAt, parseErr := parseSessionValue(val)
			if parseErr == nil && c.now().Sub(createdAt) <= c.ttl {
				continue
			}
		}

		if err := c.redisClient.Del(ctx, SessionKey(token)).Err(); err != nil {
			log.Errorf("auth scan and clean, delete session: %s", err)
			continue
		}
		if err := c.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth scan and clean, remove token from set: %s", err)
			continue
		}
		removed++
	}

	log.Infof("auth scan and clean done, removed %d/%d sessions", removed, len(tokens))
}

func parseSessionValue(val string) (string, time.Time, error) {
	userID, createdAtStr, found := strings.Cut(val, "|")
	if !found || userID == "" {
		return "", time.Time{}, fmt.Errorf("expected <user>|<created at>, got %q", val)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parse created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
