package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/kirinyoku/tix-client/internal/ui"
)

const defaultRedirectDelay = 1500 * time.Millisecond

type RegisterConfig struct {
	// RedirectDelay is how long the success message stays before the login screen opens.
	RedirectDelay time.Duration
}

type RegisterController struct {
	loop   *ui.Loop
	auth   api.AuthAPI
	nav    navigation.Navigator
	logger *slog.Logger
	cfg    RegisterConfig
	sub    submission
}

func NewRegisterController(
	loop *ui.Loop,
	auth api.AuthAPI,
	nav navigation.Navigator,
	view View,
	cfg RegisterConfig,
	logger *slog.Logger,
) *RegisterController {
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = defaultRedirectDelay
	}

	return &RegisterController{
		loop:   loop,
		auth:   auth,
		nav:    nav,
		logger: logger.With("form", "register"),
		cfg:    cfg,
		sub:    newSubmission(view, labelRegistering),
	}
}

// Submit must be called on the loop. On success the returned channel closes
// after the redirect to the login screen, otherwise once the failure is shown.
func (c *RegisterController) Submit(ctx context.Context, in RegisterInput) <-chan struct{} {
	if err := ValidateRegister(in); err != nil {
		c.sub.invalid(err)
		return closed()
	}

	in = in.normalize()
	req := domain.RegisterRequest{
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	}

	finished := make(chan struct{})
	c.sub.begin()

	ui.Submit(ctx, c.loop,
		func(ctx context.Context) (*domain.AuthResponse, error) {
			return c.auth.Register(ctx, req)
		},
		func(resp *domain.AuthResponse) {
			if _, err := resp.Result(); err != nil {
				c.logger.Info("registration rejected", "message", err.Error())
				c.sub.fail(err.Error())
				close(finished)
				return
			}

			c.logger.Info("registered", "username", req.Username)
			c.sub.succeed(msgRegisterSuccess)
			c.redirect(finished)
		},
		func(err error) {
			c.logger.Warn("registration failed", "error", err)
			c.sub.fail(err.Error())
			close(finished)
		},
	)

	return finished
}

func (c *RegisterController) State() State { return c.sub.state }

func (c *RegisterController) redirect(finished chan struct{}) {
	time.AfterFunc(c.cfg.RedirectDelay, func() {
		posted := c.loop.Post(func() {
			defer close(finished)
			c.sub.navigate(c.nav, navigation.Login, c.logger)
		})
		if !posted {
			close(finished)
		}
	})
}
