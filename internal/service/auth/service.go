package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/mockdata"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type Service struct {
	store   *memory.Store
	limiter *redisrepo.SlidingWindowLimiter
	tokens  tokens
	cfg     Config
	now     func() time.Time
}

func New(store *memory.Store, limiter *redisrepo.SlidingWindowLimiter, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		store:   store,
		limiter: limiter,
		tokens:  tokens{secret: []byte(cfg.Secret), ttl: cfg.TokenTTL},
		cfg:     cfg,
		now:     time.Now,
	}
}

// Seed creates the given accounts, skipping ones that already exist.
func (s *Service) Seed(ctx context.Context, accounts []mockdata.Account) error {
	const op = "service.auth.Seed"

	for _, a := range accounts {
		if _, err := s.create(ctx, a.User, a.Password); err != nil && !errors.Is(err, ErrAccountExists) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// Register creates a customer account. The returned user carries no token.
//
// Returns:
//   - *domain.UserInfo: the new account.
//   - error: auth.ErrAccountExists if the email or username is taken.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserInfo, error) {
	const op = "service.auth.Register"

	u, err := s.create(ctx, domain.UserInfo{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     domain.RoleCustomer,
	}, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// Login checks credentials and returns the user with a signed token. rlKey, when
// non-empty and a limiter is configured, counts the attempt against a window.
//
// Returns:
//   - *domain.UserInfo: the user, Token set.
//   - error: auth.ErrInvalidCredentials for an unknown email or wrong password.
//   - error: *auth.RateLimitedError when the window is exhausted.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest, rlKey string) (*domain.UserInfo, error) {
	const op = "service.auth.Login"

	if s.limiter != nil && rlKey != "" {
		d, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !d.Allowed {
			return nil, fmt.Errorf("%s: %w", op, &RateLimitedError{RetryAfter: d.RetryAfter})
		}
	}

	rec, err := s.store.Users().GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user := rec.User
	user.Token, err = s.tokens.issue(user, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// Authenticate validates a bearer token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	return s.tokens.parse(token)
}

func (s *Service) create(ctx context.Context, u domain.UserInfo, password string) (*domain.UserInfo, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Users().Create(ctx, memory.UserRecord{User: u, PasswordHash: hash})
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrAccountExists
	}
	if err != nil {
		return nil, err
	}

	u.ID = id
	u.Token = ""
	return &u, nil
}
