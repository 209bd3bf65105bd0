package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
	"github.com/dmitrijs2005/docwatch/internal/client/eventloop"
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/realtime"
	"github.com/dmitrijs2005/docwatch/internal/logging"
)

const detailChannel = "detail"

// DocumentDetailService owns the single open document view and its push
// channel. Opening a document closes whatever was open before.
type DocumentDetailService interface {
	// Open fetches the document and, while its analysis is pending or
	// processing, connects the detail channel.
	Open(ctx context.Context, id int64) (models.Document, error)
	Document(ctx context.Context) (models.Document, error)
	// Processing reports whether an analysis is running for the open
	// document.
	Processing(ctx context.Context) (bool, error)
	// Reanalyze starts a new analysis. It is refused without a PDF url or
	// while an analysis is running.
	Reanalyze(ctx context.Context) (models.ReanalyzeResult, error)
	PDFURL(ctx context.Context) (string, error)
	HandleDetailFrame(ctx context.Context, data []byte) error
	// ObserveListUpdate feeds a document from the list channel. It must be
	// called on the event loop.
	ObserveListUpdate(doc models.Document)
	RealtimeState() realtime.State
	// Close tears the view down: the channel is closed and in-flight
	// refetches are cancelled and discarded.
	Close()
}

type DetailOptions struct {
	WebSocketURL string
	Notify       Notifier
	Logger       logging.Logger
}

type documentDetailService struct {
	client  client.Client
	loop    *eventloop.Loop
	channel *realtime.Channel
	opts    DetailOptions
	log     logging.Logger

	// guards view and its context against Close from outside the loop
	mu      sync.Mutex
	view    uint64
	viewCtx context.Context
	cancel  context.CancelFunc

	// owned by the loop
	state *realtime.DetailState
}

func NewDocumentDetailService(c client.Client, loop *eventloop.Loop, dialer realtime.Dialer, opts DetailOptions) DocumentDetailService {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &documentDetailService{
		client:  c,
		loop:    loop,
		channel: realtime.NewChannel(detailChannel, dialer, opts.Logger),
		opts:    opts,
		log:     opts.Logger.With("component", "detail"),
		viewCtx: context.Background(),
	}
}

func (s *documentDetailService) begin() (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.view++
	s.viewCtx, s.cancel = context.WithCancel(context.Background())
	return s.view, s.viewCtx
}

func (s *documentDetailService) snapshot() (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.viewCtx
}

func (s *documentDetailService) current(view uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view == view
}

func (s *documentDetailService) Open(ctx context.Context, id int64) (models.Document, error) {
	s.Close()
	v, vctx := s.begin()

	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "document load failed", "document_id", id, "error", err)
		return models.Document{}, &LoadError{What: fmt.Sprintf("document %d", id), Err: err}
	}

	watch := realtime.ShouldWatch(doc)
	var token string
	var tokenErr error
	if watch {
		token, tokenErr = s.client.AccessToken(ctx)
	}

	err = s.loop.Do(ctx, func() {
		if !s.current(v) {
			return
		}
		d := doc.Clone()
		s.state = &realtime.DetailState{Document: &d, Processing: watch}
		if !watch {
			return
		}
		if tokenErr != nil {
			s.lost(tokenErr)
			return
		}
		s.watch(vctx, v, id, token)
	})
	return doc, err
}

// watch runs on the loop.
func (s *documentDetailService) watch(ctx context.Context, view uint64, id int64, token string) {
	u, err := realtime.DetailURL(s.opts.WebSocketURL, id, token)
	if err != nil {
		s.lost(err)
		return
	}
	s.channel.Open(ctx, u, s.handler(view))
}

// lost runs on the loop.
func (s *documentDetailService) lost(err error) {
	rerr := &RealtimeError{Channel: detailChannel, Err: err}
	s.log.Warn(context.Background(), "live analysis updates stopped", "error", rerr)
	s.opts.Notify.send(Notice{Kind: NoticeRealtimeLost, Channel: detailChannel, Err: rerr})
}

func (s *documentDetailService) handler(view uint64) realtime.Handler {
	return realtime.Handler{
		OnOpen: func() {
			s.loop.Post(func() {
				if s.current(view) {
					s.opts.Notify.send(Notice{Kind: NoticeRealtimeConnected, Channel: detailChannel})
				}
			})
		},
		OnFrame: func(data []byte) {
			s.loop.Post(func() {
				if s.current(view) {
					s.applyDetailFrame(data)
				}
			})
		},
		OnClose: func(err error) {
			s.loop.Post(func() {
				if !s.current(view) || s.state == nil {
					return
				}
				if s.state.Processing {
					s.lost(err)
					return
				}
				s.log.Debug(context.Background(), "detail channel closed", "error", err)
			})
		},
	}
}

func (s *documentDetailService) notifyDocument() {
	d := s.state.Document.Clone()
	s.opts.Notify.send(Notice{Kind: NoticeDetailChanged, Channel: detailChannel, Document: &d})
}

// applyDetailFrame runs on the loop.
func (s *documentDetailService) applyDetailFrame(data []byte) {
	if s.state == nil || s.state.Document == nil {
		return
	}
	ctx := context.Background()
	m, err := realtime.DecodeDetailFrame(data)
	if err != nil {
		s.log.Warn(ctx, "dropping detail frame", "error", err)
		return
	}

	log := s.log.With("event_type", m.EventType, "document_id", s.state.Document.ID)
	out := realtime.ApplyDetailEvent(s.state, m)
	if out.Unrecognized {
		log.Warn(ctx, "unrecognized detail event")
		return
	}
	log.Debug(ctx, "detail event applied", "analysis_status", s.state.Document.AnalysisStatus())
	s.notifyDocument()
	if out.Close {
		s.channel.Close()
	}
	if out.Refetch {
		s.refetch(s.state.Document.ID)
	}
}

// refetch reloads the document in the background; the result is applied
// only if the same view is still open.
func (s *documentDetailService) refetch(id int64) {
	view, ctx := s.snapshot()
	go func() {
		doc, err := s.client.GetDocument(ctx, id)
		s.loop.Post(func() {
			if !s.current(view) || s.state == nil {
				return
			}
			if err != nil {
				s.log.Warn(ctx, "document refetch failed", "document_id", id, "error", err)
				return
			}
			s.state.Document = &doc
			if doc.AnalysisStatus().Terminal() {
				s.state.Processing = false
			}
			s.notifyDocument()
		})
	}()
}

func (s *documentDetailService) HandleDetailFrame(ctx context.Context, data []byte) error {
	return s.loop.Do(ctx, func() { s.applyDetailFrame(data) })
}

func (s *documentDetailService) ObserveListUpdate(doc models.Document) {
	if s.state == nil || s.state.Document == nil || s.state.Document.ID != doc.ID {
		return
	}
	d := doc.Clone()
	s.state.Document = &d
	if doc.AnalysisStatus().Terminal() {
		s.state.Processing = false
		s.channel.Close()
	}
	s.notifyDocument()
}

func (s *documentDetailService) Document(ctx context.Context) (models.Document, error) {
	return onLoop(ctx, s.loop, func() (models.Document, error) {
		if s.state == nil || s.state.Document == nil {
			return models.Document{}, ErrNoDocumentOpen
		}
		return s.state.Document.Clone(), nil
	})
}

func (s *documentDetailService) Processing(ctx context.Context) (bool, error) {
	return onLoop(ctx, s.loop, func() (bool, error) {
		if s.state == nil {
			return false, ErrNoDocumentOpen
		}
		return s.state.Processing, nil
	})
}

func (s *documentDetailService) Reanalyze(ctx context.Context) (models.ReanalyzeResult, error) {
	id, err := onLoop(ctx, s.loop, func() (int64, error) {
		if s.state == nil || s.state.Document == nil {
			return 0, ErrNoDocumentOpen
		}
		d := s.state.Document
		if d.URLPDF == "" || s.state.Processing || d.AnalysisStatus().InProgress() {
			return d.ID, &ActionError{Op: "reanalyze", ID: d.ID, Err: ErrReanalyzeNotAllowed}
		}
		return d.ID, nil
	})
	if err != nil {
		return models.ReanalyzeResult{}, err
	}
	view, vctx := s.snapshot()

	res, err := s.client.Reanalyze(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "reanalysis failed", "document_id", id, "error", err)
		return models.ReanalyzeResult{}, &ActionError{Op: "reanalyze", ID: id, Err: err}
	}
	s.log.Info(ctx, "reanalysis queued", "document_id", id, "status", res.Status)
	token, tokenErr := s.client.AccessToken(ctx)

	err = s.loop.Do(ctx, func() {
		if !s.current(view) || s.state == nil {
			return
		}
		if s.state.Document.Analysis == nil {
			s.state.Document.Analysis = &models.Analysis{}
		}
		s.state.Document.Analysis.Status = models.AnalysisPending
		s.state.Processing = true
		s.notifyDocument()
		if tokenErr != nil {
			s.lost(tokenErr)
			return
		}
		s.watch(vctx, view, id, token)
	})
	return res, err
}

func (s *documentDetailService) PDFURL(ctx context.Context) (string, error) {
	id, err := onLoop(ctx, s.loop, func() (int64, error) {
		if s.state == nil || s.state.Document == nil {
			return 0, ErrNoDocumentOpen
		}
		return s.state.Document.ID, nil
	})
	if err != nil {
		return "", err
	}
	u, err := s.client.PDFURL(ctx, id)
	if err != nil {
		return "", &ActionError{Op: "pdf", ID: id, Err: err}
	}
	return u, nil
}

func (s *documentDetailService) RealtimeState() realtime.State {
	return s.channel.State()
}

func (s *documentDetailService) Close() {
	s.mu.Lock()
	s.view++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.channel.Close()
	s.loop.Post(func() { s.state = nil })
}
