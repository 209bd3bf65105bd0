package services

import (
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/risk"
)

type NoticeKind int

const (
	// NoticeViewChanged carries the re-projected list after a push event.
	NoticeViewChanged NoticeKind = iota
	// NoticeDetailChanged carries the open document after a change.
	NoticeDetailChanged
	NoticeRealtimeConnected
	// NoticeRealtimeLost carries a *RealtimeError in Err.
	NoticeRealtimeLost
)

// Notice is what the services push to the UI. Notify callbacks run on the
// event loop and must not block.
type Notice struct {
	Kind     NoticeKind
	Channel  string
	View     []models.Document
	Risk     *risk.Summary
	Document *models.Document
	Err      error
}

type Notifier func(Notice)

func (n Notifier) send(notice Notice) {
	if n != nil {
		n(notice)
	}
}
