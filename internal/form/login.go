package form

import (
	"context"
	"log/slog"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/kirinyoku/tix-client/internal/ui"
)

type LoginController struct {
	loop   *ui.Loop
	auth   api.AuthAPI
	nav    navigation.Navigator
	logger *slog.Logger
	sub    submission
}

func NewLoginController(loop *ui.Loop, auth api.AuthAPI, nav navigation.Navigator, view View, logger *slog.Logger) *LoginController {
	return &LoginController{
		loop:   loop,
		auth:   auth,
		nav:    nav,
		logger: logger.With("form", "login"),
		sub:    newSubmission(view, labelLoggingIn),
	}
}

// Submit must be called on the loop. The returned channel closes once the
// outcome has been applied to the view.
func (c *LoginController) Submit(ctx context.Context, in LoginInput) <-chan struct{} {
	if err := ValidateLogin(in); err != nil {
		c.sub.invalid(err)
		return closed()
	}

	in = in.normalize()
	c.sub.begin()

	return ui.Submit(ctx, c.loop,
		func(ctx context.Context) (*domain.AuthResponse, error) {
			return c.auth.Login(ctx, in.Email, in.Password)
		},
		c.onResponse,
		c.onError,
	)
}

func (c *LoginController) State() State { return c.sub.state }

func (c *LoginController) onResponse(resp *domain.AuthResponse) {
	user, err := resp.Result()
	if err != nil {
		c.logger.Info("login rejected", "message", err.Error())
		c.sub.fail(err.Error())
		return
	}

	c.logger.Info("logged in", "user_id", user.ID, "role", user.Role)
	c.sub.succeed(msgLoginSuccess)
	c.sub.navigate(c.nav, navigation.DestinationFor(user.Role), c.logger)
}

func (c *LoginController) onError(err error) {
	c.logger.Warn("login failed", "error", err)
	c.sub.fail(err.Error())
}
