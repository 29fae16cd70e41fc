package service

import (
	"context"
	"time"

	"crowdcount/internal/models"
	"crowdcount/internal/repository"
)

// Accounts covers identity creation and verification against the
// credential store.
type Accounts interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Sessions issues and checks the signed tokens that tie a client to a user.
// Invalidate is unconditional; revoked and expired tokens fail Validate.
type Sessions interface {
	Issue(userID int) (string, error)
	Validate(token string) (int, error)
	Invalidate(token string)
}

// Analytics exposes the read-only informational payloads. The data is
// static mock content, there is no computation behind it.
type Analytics interface {
	Dashboard() DashboardAnalytics
	VideoFeeds() VideoAnalytics
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Accounts
	Sessions
	Analytics
}

// SessionConfig carries the token parameters injected from configuration.
type SessionConfig struct {
	SigningKey string
	TTL        time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, sessions SessionConfig) *Service {
	return &Service{
		Accounts:  NewAccountService(repos.Users),
		Sessions:  NewSessionManager(sessions),
		Analytics: NewAnalyticsService(),
	}
}
