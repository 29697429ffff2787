// Package moderation gates queue access behind the moderator allow-list.
package moderation

import (
	"context"
	"strings"

	"github.com/jobfolio/profile-intake/internal/domain"
	"github.com/jobfolio/profile-intake/internal/identity"
	"github.com/jobfolio/profile-intake/internal/logger"
)

const bearerPrefix = "Bearer "

// TokenResolver turns a bearer token into an identity.
type TokenResolver interface {
	Lookup(ctx context.Context, token string) (*identity.User, error)
}

// Guard authenticates moderation requests. A request passes only when its
// token resolves to a user whose email is on the allow-list.
type Guard struct {
	resolver TokenResolver
	emails   []string
	log      logger.Logger
}

// NewGuard builds a guard. resolver may be nil when the auth service is not
// configured; every request is then refused with a configuration error.
func NewGuard(resolver TokenResolver, moderatorEmails []string, log logger.Logger) *Guard {
	emails := make([]string, 0, len(moderatorEmails))
	for _, email := range moderatorEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return &Guard{resolver: resolver, emails: emails, log: log}
}

// RequireModerator validates the Authorization header value and returns the
// allow-listed moderator behind it.
func (g *Guard) RequireModerator(ctx context.Context, authorization string) (*identity.User, error) {
	if g.resolver == nil {
		return nil, &domain.ConfigurationError{
			Message: "auth service is not configured; set AUTH_BASE_URL and AUTH_API_KEY",
		}
	}
	if len(g.emails) == 0 {
		return nil, &domain.ConfigurationError{
			Message: "no moderator emails configured; set MODERATOR_EMAILS",
		}
	}

	if !strings.HasPrefix(authorization, bearerPrefix) {
		return nil, &domain.AuthorizationError{Message: "missing bearer token"}
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	if token == "" {
		return nil, &domain.AuthorizationError{Message: "invalid bearer token"}
	}

	user, err := g.resolver.Lookup(ctx, token)
	if err != nil {
		g.log.Warn("moderator token lookup failed", logger.Error(err))
		return nil, &domain.AuthorizationError{Message: "authentication failed"}
	}

	email := strings.ToLower(user.Email)
	if email == "" || !g.allowed(email) {
		return nil, &domain.AuthorizationError{
			Message:   "authenticated user is not an authorized moderator",
			Forbidden: true,
		}
	}

	return user, nil
}

func (g *Guard) allowed(email string) bool {
	for _, candidate := range g.emails {
		if candidate == email {
			return true
		}
	}
	return false
}
