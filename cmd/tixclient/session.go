package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/form"
	"github.com/kirinyoku/tix-client/internal/mockdata"
	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/kirinyoku/tix-client/internal/ui"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// session is one terminal run: a client, the UI loop and the screens it can open.
type session struct {
	client *api.Client
	loop   *ui.Loop
	router *navigation.Router
	logger *slog.Logger
}

func newSession(ctx context.Context, logger *slog.Logger) (*session, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	s := &session{
		client: api.New(api.NewHTTPClient(cfg.API), cfg.API, logger),
		loop:   ui.NewLoop(logger, 0),
		router: navigation.NewRouter(),
		logger: logger,
	}

	for _, dest := range []navigation.Destination{
		navigation.Login,
		navigation.Register,
		navigation.AdminDashboard,
		navigation.ManagerDashboard,
		navigation.CustomerHome,
		navigation.CustomerPayment,
	} {
		s.router.Register(dest, func() error {
			fmt.Printf("→ %s\n", dest)
			return nil
		})
	}

	return s, nil
}

// view returns widgets that print every change to the terminal.
func (s *session) view(label string) form.View {
	button := ui.NewButton(label)
	button.OnChange(func(label string, disabled bool) {
		if disabled {
			fmt.Printf("[%s]\n", label)
		}
	})

	status := ui.NewStatus()
	status.OnChange(func(text string, tone ui.Tone) {
		if text != "" {
			fmt.Printf("%s: %s\n", tone, text)
		}
	})

	return form.View{Submit: button, Status: status}
}

func (s *session) login(ctx context.Context, email, password string) <-chan struct{} {
	ctrl := form.NewLoginController(s.loop, s.client, s.router, s.view("Đăng nhập"), s.logger)
	return ctrl.Submit(ctx, form.LoginInput{Email: email, Password: password})
}

// run starts the loop, calls submit on it and waits for the returned channel.
// The loop is replaced afterwards, so controllers must be built per run.
func (s *session) run(ctx context.Context, submit func() <-chan struct{}) error {
	g, gCtx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gCtx)

	g.Go(func() error {
		err := s.loop.Run(loopCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer stop()

		var done <-chan struct{}
		if !s.loop.Invoke(func() { done = submit() }) {
			return errors.New("ui loop stopped")
		}

		select {
		case <-done:
			return nil
		case <-gCtx.Done():
			return gCtx.Err()
		}
	})

	err := g.Wait()
	s.loop = ui.NewLoop(s.logger, 0)
	return err
}

// buildBooking resolves the showtime from the fixtures the stub serves and
// prices every seat at the flat fixture price.
func (s *session) buildBooking(ctx context.Context, showtimeID int64, labels []string) (*domain.Booking, error) {
	showtime, ok := lo.Find(mockdata.Showtimes(), func(st domain.ShowtimeDTO) bool { return st.ID == showtimeID })
	if !ok {
		return nil, fmt.Errorf("unknown showtime %d", showtimeID)
	}

	screen, err := s.client.GetScreen(ctx, showtime.ScreenID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		MovieID:    showtime.MovieID,
		CinemaID:   screen.CinemaID,
		ScreenID:   screen.ID,
		ShowtimeID: showtime.ID,
	}
	if u, ok := s.client.CurrentUser(); ok {
		b.CustomerID = u.ID
	}

	for _, label := range labels {
		label = strings.ToUpper(strings.TrimSpace(label))
		if label == "" {
			continue
		}

		row, col, err := parseSeatLabel(label)
		if err != nil {
			return nil, err
		}
		if row >= screen.RowCount || col >= screen.ColumnCount {
			return nil, fmt.Errorf("seat %s is outside %s", label, screen.Name)
		}

		b.Seats = append(b.Seats, domain.SeatSelection{
			SeatID: mockdata.SeatID(*screen, row, col),
			Label:  mockdata.SeatLabel(row, col),
			Price:  mockdata.SeatPrice,
		})
	}

	b.ComputeTotals()
	return b, nil
}

func parseSeatLabel(label string) (row, col int, err error) {
	if len(label) < 2 || label[0] < 'A' || label[0] > 'Z' {
		return 0, 0, fmt.Errorf("invalid seat %q", label)
	}

	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid seat %q", label)
	}

	return int(label[0] - 'A'), n - 1, nil
}
