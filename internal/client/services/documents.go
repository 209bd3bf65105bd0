package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
	"github.com/dmitrijs2005/docwatch/internal/client/eventloop"
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/realtime"
	"github.com/dmitrijs2005/docwatch/internal/client/repositories/documents"
	"github.com/dmitrijs2005/docwatch/internal/client/risk"
	"github.com/dmitrijs2005/docwatch/internal/client/view"
	"github.com/dmitrijs2005/docwatch/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const listChannel = "list"

// DocumentListService owns the account's document list: the cache, the
// company lookup, the current query and the list push channel.
type DocumentListService interface {
	// Load fetches documents and companies in parallel and replaces the
	// cache. On failure the cache is emptied and a *LoadError returned.
	Load(ctx context.Context) error
	// OpenRealtime connects the list channel. It needs a successful Load
	// with at least one company and is a no-op while connecting or
	// connected.
	OpenRealtime(ctx context.Context) error
	// HandleListFrame applies one raw list channel frame.
	HandleListFrame(ctx context.Context, data []byte) error

	View(ctx context.Context) ([]models.Document, error)
	Search(ctx context.Context, term string) ([]models.Document, error)
	SortBy(ctx context.Context, key view.SortKey) ([]models.Document, error)
	Query(ctx context.Context) (view.Query, error)
	Risk(ctx context.Context) (risk.Summary, error)
	RiskDashboard(ctx context.Context, level risk.Level) ([]risk.PendingDocument, error)
	Companies(ctx context.Context) ([]models.Company, error)
	CompanyNames(ctx context.Context) (models.CompanyNames, error)
	Document(ctx context.Context, id int64) (models.Document, error)
	Status(ctx context.Context) (ListStatus, error)

	// SyncStatus asks the backend to refresh the signature status. The
	// document is flagged as syncing until the call returns; the cache is
	// updated by the following document_updated push.
	SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error)
	// Delete removes the document on the server. The cache entry goes away
	// with the document_deleted push.
	Delete(ctx context.Context, id int64) error
	Create(ctx context.Context, draft models.DocumentDraft) (models.Document, error)
	Update(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error)

	// Close tears down the list channel. Nothing queued by it is applied
	// afterwards.
	Close()
}

// ListStatus is the state shown in the status line.
type ListStatus struct {
	Documents   int
	Realtime    realtime.State
	LoadErr     error
	RealtimeErr error
}

type ListOptions struct {
	WebSocketURL string
	Projector    *view.Projector
	Notify       Notifier
	// OnDocument runs on the loop for every created or updated document
	// applied from the list channel.
	OnDocument func(models.Document)
	Now        func() time.Time
	Logger     logging.Logger
}

type documentListService struct {
	client  client.Client
	loop    *eventloop.Loop
	channel *realtime.Channel
	opts    ListOptions
	log     logging.Logger

	// guards session and cancel against Close from outside the loop
	mu      sync.Mutex
	session uint64
	cancel  context.CancelFunc

	// owned by the loop
	list      *realtime.ListState
	companies []models.Company
	names     models.CompanyNames
	query     view.Query
	riskView  bool
	loaded    bool
	loadErr   error
	rtErr     error
}

func NewDocumentListService(c client.Client, loop *eventloop.Loop, dialer realtime.Dialer, opts ListOptions) DocumentListService {
	if opts.Projector == nil {
		opts.Projector = view.NewProjector(language.BrazilianPortuguese)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &documentListService{
		client:  c,
		loop:    loop,
		channel: realtime.NewChannel(listChannel, dialer, opts.Logger),
		opts:    opts,
		log:     opts.Logger.With("component", "documents"),
		list:    realtime.NewListState(documents.NewMemoryRepository()),
		query:   view.Query{Sort: view.DefaultSort()},
	}
}

func (s *documentListService) Load(ctx context.Context) error {
	var (
		docs      []models.Document
		companies []models.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if docs, err = s.client.ListDocuments(gctx); err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if companies, err = s.client.ListCompanies(gctx); err != nil {
			return fmt.Errorf("list companies: %w", err)
		}
		return nil
	})

	var loadErr error
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "initial load failed", "error", err)
		loadErr = &LoadError{What: "documents", Err: err}
	}

	err := s.loop.Do(ctx, func() {
		if loadErr != nil {
			s.list.Load(nil)
			s.companies, s.names = nil, nil
			s.loaded, s.loadErr = false, loadErr
			return
		}
		s.list.Load(docs)
		s.companies, s.names = companies, models.NewCompanyNames(companies)
		s.loaded, s.loadErr = true, nil
	})
	if err != nil {
		return err
	}
	if loadErr == nil {
		s.log.Info(ctx, "documents loaded", "documents", len(docs), "companies", len(companies))
	}
	return loadErr
}

// requireLoaded runs on the loop.
func (s *documentListService) requireLoaded() error {
	if s.loaded {
		return nil
	}
	if s.loadErr != nil {
		return s.loadErr
	}
	return ErrNotLoaded
}

func (s *documentListService) projection() []models.Document {
	return s.opts.Projector.Project(s.list.Docs.All(), s.query, s.names)
}

func (s *documentListService) current(session uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session == session
}

func (s *documentListService) OpenRealtime(ctx context.Context) error {
	ready, err := onLoop(ctx, s.loop, func() (bool, error) {
		if err := s.requireLoaded(); err != nil {
			return false, err
		}
		return len(s.companies) > 0, nil
	})
	if err != nil {
		return err
	}
	if !ready {
		return ErrRealtimeNotReady
	}
	if s.channel.State() != realtime.Disconnected {
		return nil
	}

	token, err := s.client.AccessToken(ctx)
	if err != nil {
		return &RealtimeError{Channel: listChannel, Err: err}
	}
	u, err := realtime.ListURL(s.opts.WebSocketURL, token)
	if err != nil {
		return &RealtimeError{Channel: listChannel, Err: err}
	}

	return s.loop.Do(ctx, func() {
		// only the loop opens the channel, so this check holds until Open
		if s.channel.State() != realtime.Disconnected {
			return
		}
		s.mu.Lock()
		if s.cancel != nil {
			s.cancel()
		}
		s.session++
		session := s.session
		chCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		s.mu.Unlock()

		s.rtErr = nil
		s.channel.Open(chCtx, u, s.handler(session))
	})
}

func (s *documentListService) handler(session uint64) realtime.Handler {
	return realtime.Handler{
		OnOpen: func() {
			s.loop.Post(func() {
				if s.current(session) {
					s.opts.Notify.send(Notice{Kind: NoticeRealtimeConnected, Channel: listChannel})
				}
			})
		},
		OnFrame: func(data []byte) {
			s.loop.Post(func() {
				if s.current(session) {
					s.applyListFrame(data)
				}
			})
		},
		OnClose: func(err error) {
			s.loop.Post(func() {
				if !s.current(session) {
					return
				}
				rerr := &RealtimeError{Channel: listChannel, Err: err}
				s.rtErr = rerr
				s.log.Warn(context.Background(), "live updates stopped", "error", rerr)
				s.opts.Notify.send(Notice{Kind: NoticeRealtimeLost, Channel: listChannel, Err: rerr})
			})
		},
	}
}

// applyListFrame runs on the loop.
func (s *documentListService) applyListFrame(data []byte) {
	ctx := context.Background()
	m, err := realtime.DecodeListFrame(data)
	if err != nil {
		s.log.Warn(ctx, "dropping list frame", "error", err)
		return
	}

	log := s.log.With("event_type", m.EventType, "document_id", m.Document.ID)
	switch realtime.ApplyListEvent(s.list, m) {
	case realtime.Unrecognized:
		log.Warn(ctx, "unrecognized list event")
	case realtime.Stale:
		log.Debug(ctx, "event for deleted document dropped")
	case realtime.Applied:
		log.Debug(ctx, "list event applied")
		if m.EventType != models.EventDocumentDeleted && s.opts.OnDocument != nil {
			s.opts.OnDocument(m.Document.Clone())
		}
		s.notifyView()
	}
}

func (s *documentListService) notifyView() {
	n := Notice{Kind: NoticeViewChanged, Channel: listChannel, View: s.projection()}
	if s.riskView {
		sum := risk.Summarize(s.list.Docs.All(), s.opts.Now())
		n.Risk = &sum
	}
	s.opts.Notify.send(n)
}

func (s *documentListService) HandleListFrame(ctx context.Context, data []byte) error {
	return s.loop.Do(ctx, func() { s.applyListFrame(data) })
}

func (s *documentListService) View(ctx context.Context) ([]models.Document, error) {
	return onLoop(ctx, s.loop, func() ([]models.Document, error) {
		if err := s.requireLoaded(); err != nil {
			return nil, err
		}
		s.riskView = false
		return s.projection(), nil
	})
}

func (s *documentListService) Search(ctx context.Context, term string) ([]models.Document, error) {
	return onLoop(ctx, s.loop, func() ([]models.Document, error) {
		if err := s.requireLoaded(); err != nil {
			return nil, err
		}
		s.query.Search = term
		s.riskView = false
		return s.projection(), nil
	})
}

func (s *documentListService) SortBy(ctx context.Context, key view.SortKey) ([]models.Document, error) {
	return onLoop(ctx, s.loop, func() ([]models.Document, error) {
		if err := s.requireLoaded(); err != nil {
			return nil, err
		}
		s.query.Sort = s.query.Sort.SortBy(key)
		s.riskView = false
		return s.projection(), nil
	})
}

func (s *documentListService) Query(ctx context.Context) (view.Query, error) {
	return onLoop(ctx, s.loop, func() (view.Query, error) {
		return s.query, nil
	})
}

func (s *documentListService) Risk(ctx context.Context) (risk.Summary, error) {
	return onLoop(ctx, s.loop, func() (risk.Summary, error) {
		if err := s.requireLoaded(); err != nil {
			return risk.Summary{}, err
		}
		return risk.Summarize(s.list.Docs.All(), s.opts.Now()), nil
	})
}

func (s *documentListService) RiskDashboard(ctx context.Context, level risk.Level) ([]risk.PendingDocument, error) {
	return onLoop(ctx, s.loop, func() ([]risk.PendingDocument, error) {
		if err := s.requireLoaded(); err != nil {
			return nil, err
		}
		s.riskView = true
		return risk.Filter(risk.Pending(s.list.Docs.All(), s.opts.Now()), level), nil
	})
}

func (s *documentListService) Companies(ctx context.Context) ([]models.Company, error) {
	return onLoop(ctx, s.loop, func() ([]models.Company, error) {
		if err := s.requireLoaded(); err != nil {
			return nil, err
		}
		return append([]models.Company(nil), s.companies...), nil
	})
}

func (s *documentListService) CompanyNames(ctx context.Context) (models.CompanyNames, error) {
	return onLoop(ctx, s.loop, func() (models.CompanyNames, error) {
		names := make(models.CompanyNames, len(s.names))
		for id, n := range s.names {
			names[id] = n
		}
		return names, nil
	})
}

func (s *documentListService) Document(ctx context.Context, id int64) (models.Document, error) {
	return onLoop(ctx, s.loop, func() (models.Document, error) {
		if err := s.requireLoaded(); err != nil {
			return models.Document{}, err
		}
		d, ok := s.list.Docs.GetByID(id)
		if !ok {
			return models.Document{}, fmt.Errorf("document %d: %w", id, ErrDocumentNotCached)
		}
		return d, nil
	})
}

func (s *documentListService) Status(ctx context.Context) (ListStatus, error) {
	return onLoop(ctx, s.loop, func() (ListStatus, error) {
		return ListStatus{
			Documents:   s.list.Docs.Len(),
			Realtime:    s.channel.State(),
			LoadErr:     s.loadErr,
			RealtimeErr: s.rtErr,
		}, nil
	})
}

func (s *documentListService) SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error) {
	_, err := onLoop(ctx, s.loop, func() (struct{}, error) {
		if err := s.requireLoaded(); err != nil {
			return struct{}{}, err
		}
		d, ok := s.list.Docs.GetByID(id)
		switch {
		case !ok:
			return struct{}{}, &ActionError{Op: "sync", ID: id, Err: ErrDocumentNotCached}
		case d.Syncing:
			return struct{}{}, &ActionError{Op: "sync", ID: id, Err: ErrAlreadySyncing}
		case !d.CanSync():
			return struct{}{}, &ActionError{Op: "sync", ID: id, Err: ErrSyncNotAllowed}
		}
		s.list.Docs.SetSyncing(id, true)
		s.notifyView()
		return struct{}{}, nil
	})
	if err != nil {
		return models.SyncStatusResult{}, err
	}

	// reverted whatever the outcome, even if ctx is already done
	defer s.loop.Post(func() {
		if s.list.Docs.SetSyncing(id, false) {
			s.notifyView()
		}
	})

	ctx = client.WithRequestID(ctx, uuid.NewString())
	log := s.log.With("document_id", id)
	res, err := s.client.SyncStatus(ctx, id)
	if err != nil {
		log.Warn(ctx, "status sync failed", "error", err)
		return models.SyncStatusResult{}, &ActionError{Op: "sync", ID: id, Err: err}
	}
	log.Info(ctx, "status sync requested", "new_status", res.NewStatus)
	return res, nil
}

func (s *documentListService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteDocument(ctx, id); err != nil {
		s.log.Warn(ctx, "delete failed", "document_id", id, "error", err)
		return &ActionError{Op: "delete", ID: id, Err: err}
	}
	s.log.Info(ctx, "delete requested", "document_id", id)
	return nil
}

func (s *documentListService) Create(ctx context.Context, draft models.DocumentDraft) (models.Document, error) {
	doc, err := s.client.CreateDocument(ctx, draft)
	if err != nil {
		return models.Document{}, &ActionError{Op: "create", Err: err}
	}
	return doc, nil
}

func (s *documentListService) Update(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error) {
	doc, err := s.client.UpdateDocument(ctx, id, draft)
	if err != nil {
		return models.Document{}, &ActionError{Op: "update", ID: id, Err: err}
	}
	return doc, nil
}

func (s *documentListService) Close() {
	s.mu.Lock()
	s.session++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.channel.Close()
}
