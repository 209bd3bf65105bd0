package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
	"github.com/dmitrijs2005/docwatch/internal/client/config"
	"github.com/dmitrijs2005/docwatch/internal/client/eventloop"
	"github.com/dmitrijs2005/docwatch/internal/client/realtime"
	"github.com/dmitrijs2005/docwatch/internal/client/services"
	"github.com/dmitrijs2005/docwatch/internal/client/view"
	"github.com/dmitrijs2005/docwatch/internal/logging"
	"golang.org/x/text/language"
)

const (
	loopBuffer   = 256
	noticeBuffer = 64
)

type App struct {
	config *config.Config
	log    logging.Logger
	loop   *eventloop.Loop

	authService   services.AuthService
	listService   services.DocumentListService
	detailService services.DocumentDetailService

	notices  chan services.Notice
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", c.Locale, err)
	}

	loop := eventloop.New(loopBuffer)
	apiClient := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	dialer := realtime.NewWSDialer(c.RequestTimeout)

	a := &App{
		config:  c,
		log:     log,
		loop:    loop,
		notices: make(chan services.Notice, noticeBuffer),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	a.authService = services.NewAuthService(apiClient)
	a.detailService = services.NewDocumentDetailService(apiClient, loop, dialer, services.DetailOptions{
		WebSocketURL: c.WebSocketURL,
		Notify:       a.notify,
		Logger:       log,
	})
	a.listService = services.NewDocumentListService(apiClient, loop, dialer, services.ListOptions{
		WebSocketURL: c.WebSocketURL,
		Projector:    view.NewProjector(tag),
		Notify:       a.notify,
		OnDocument:   a.detailService.ObserveListUpdate,
		Logger:       log,
	})

	return a, nil
}

// Run starts the event loop and the notice watcher and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.loop.Run(ctx)
	go a.watchNotices(ctx)
	defer a.shutdown()

	a.Root(ctx)
}

func (a *App) shutdown() {
	a.detailService.Close()
	a.listService.Close()
	a.loop.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService != nil && a.authService.IsLoggedIn()
}
