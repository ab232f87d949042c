package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kirinyoku/tix-client/internal/app"
	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/kirinyoku/tix-client/internal/form"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cliApp := &cli.App{
		Name:  "tixclient",
		Usage: "cinema booking client and its development stub backend",
		Commands: []*cli.Command{
			{
				Name:  "stub",
				Usage: "run the stub backend",
				Action: func(c *cli.Context) error {
					cfg, err := config.New()
					if err != nil {
						return err
					}

					application, err := app.New(cfg, logger)
					if err != nil {
						return err
					}

					return application.Run(c.Context)
				},
			},
			{
				Name:  "movies",
				Usage: "list movies now showing",
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, logger)
					if err != nil {
						return err
					}

					movies, err := s.client.ListMovies(c.Context)
					if err != nil {
						return err
					}

					for _, m := range movies {
						fmt.Printf("%d\t%s\t%s\t%d phút\t%.1f★\n", m.ID, m.Title, m.ReleaseDate, m.Duration, m.AverageRating)
					}
					return nil
				},
			},
			{
				Name:  "login",
				Usage: "sign in and open the home screen for the account role",
				Flags: credentialFlags(),
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, logger)
					if err != nil {
						return err
					}

					return s.run(c.Context, func() <-chan struct{} {
						return s.login(c.Context, c.String("email"), c.String("password"))
					})
				},
			},
			{
				Name:  "register",
				Usage: "create a customer account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "full-name"},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "confirm", Usage: "defaults to --password"},
				},
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, logger)
					if err != nil {
						return err
					}

					confirm := c.String("confirm")
					if !c.IsSet("confirm") {
						confirm = c.String("password")
					}

					in := form.RegisterInput{
						Username:        c.String("username"),
						FullName:        c.String("full-name"),
						Email:           c.String("email"),
						Phone:           c.String("phone"),
						Password:        c.String("password"),
						ConfirmPassword: confirm,
					}

					view := s.view("Đăng ký")
					ctrl := form.NewRegisterController(s.loop, s.client, s.router, view, form.RegisterConfig{}, logger)

					return s.run(c.Context, func() <-chan struct{} {
						return ctrl.Submit(c.Context, in)
					})
				},
			},
			{
				Name:  "book",
				Usage: "sign in and book seats for a showtime",
				Flags: append(credentialFlags(),
					&cli.Int64Flag{Name: "showtime", Required: true},
					&cli.StringFlag{Name: "seats", Required: true, Usage: "comma separated labels, e.g. C1,C2"},
				),
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, logger)
					if err != nil {
						return err
					}

					if err := s.run(c.Context, func() <-chan struct{} {
						return s.login(c.Context, c.String("email"), c.String("password"))
					}); err != nil {
						return err
					}

					if _, ok := s.client.CurrentUser(); !ok {
						return cli.Exit("login failed", 1)
					}

					booking, err := s.buildBooking(c.Context, c.Int64("showtime"), strings.Split(c.String("seats"), ","))
					if err != nil {
						return err
					}

					view := s.view("Đặt vé")
					ctrl := form.NewBookingController(s.loop, s.client, s.router, view, logger)

					return s.run(c.Context, func() <-chan struct{} {
						return ctrl.Submit(c.Context, booking)
					})
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("tixclient failed", "error", err)
		os.Exit(1)
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", Required: true},
	}
}
