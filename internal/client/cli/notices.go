package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docwatch/internal/client/risk"
	"github.com/dmitrijs2005/docwatch/internal/client/services"
)

// notify runs on the event loop, so it never blocks: notices that do not
// fit the buffer are dropped.
func (a *App) notify(n services.Notice) {
	select {
	case a.notices <- n:
	default:
		a.log.Debug(context.Background(), "notice dropped", "kind", n.Kind, "channel", n.Channel)
	}
}

// watchNotices prints live updates until ctx is done.
func (a *App) watchNotices(ctx context.Context) {
	for {
		select {
		case n := <-a.notices:
			if line := noticeLine(n); line != "" {
				printlnFn(line)
			}
		case <-ctx.Done():
			return
		}
	}
}

func noticeLine(n services.Notice) string {
	switch n.Kind {
	case services.NoticeViewChanged:
		line := fmt.Sprintf("* list updated: %d documents in view", len(n.View))
		if n.Risk != nil {
			line += "; " + summaryLine(*n.Risk)
		}
		return line
	case services.NoticeDetailChanged:
		if n.Document == nil {
			return ""
		}
		status := string(n.Document.AnalysisStatus())
		if status == "" {
			status = "none"
		}
		return fmt.Sprintf("* document %d: analysis %s", n.Document.ID, status)
	case services.NoticeRealtimeConnected:
		return fmt.Sprintf("* live updates on (%s)", n.Channel)
	case services.NoticeRealtimeLost:
		var rerr *services.RealtimeError
		if errors.As(n.Err, &rerr) {
			return "! " + rerr.Message()
		}
		return fmt.Sprintf("! live updates stopped (%s)", n.Channel)
	default:
		return ""
	}
}

func summaryLine(s risk.Summary) string {
	return fmt.Sprintf("open %d: low %d, medium %d, high %d", s.Total, s.Level1, s.Level2, s.Level3)
}
