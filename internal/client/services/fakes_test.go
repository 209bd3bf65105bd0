package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
	"github.com/dmitrijs2005/docwatch/internal/client/eventloop"
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/realtime"
)

// fakeClient implements client.Client for service tests. Unset hooks panic
// through the embedded nil interface.
type fakeClient struct {
	client.Client

	mu sync.Mutex

	docs        []models.Document
	docsErr     error
	companies   []models.Company
	companyErr  error
	getDocument func(id int64) (models.Document, error)
	syncStatus  func(ctx context.Context, id int64) (models.SyncStatusResult, error)
	reanalyze   func(id int64) (models.ReanalyzeResult, error)
	deleteErr   error
	tokenErr    error

	deleted   []int64
	getCalls  int
	syncCalls int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	if username == "ana@example.com" && password == "secret" {
		return nil
	}
	return client.ErrUnauthorized
}

func (f *fakeClient) Logout()        {}
func (f *fakeClient) LoggedIn() bool { return true }

func (f *fakeClient) AccessToken(ctx context.Context) (string, error) {
	return "tok", f.tokenErr
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return f.docs, f.docsErr
}

func (f *fakeClient) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return f.companies, f.companyErr
}

func (f *fakeClient) GetDocument(ctx context.Context, id int64) (models.Document, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()
	return f.getDocument(id)
}

func (f *fakeClient) GetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func (f *fakeClient) SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error) {
	f.mu.Lock()
	f.syncCalls++
	f.mu.Unlock()
	return f.syncStatus(ctx, id)
}

func (f *fakeClient) DeleteDocument(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeClient) Reanalyze(ctx context.Context, id int64) (models.ReanalyzeResult, error) {
	return f.reanalyze(id)
}

func (f *fakeClient) PDFURL(ctx context.Context, id int64) (string, error) {
	if id == 404 {
		return "", client.ErrNotFound
	}
	return "https://files.example.com/signed.pdf", nil
}

func (f *fakeClient) CreateDocument(ctx context.Context, draft models.DocumentDraft) (models.Document, error) {
	return models.Document{ID: 99, Name: draft.Name, Company: draft.Company}, nil
}

func (f *fakeClient) UpdateDocument(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error) {
	return models.Document{}, client.ErrBadRequest
}

type fakeConn struct {
	frames chan []byte
	errs   chan error
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{frames: make(chan []byte, 16), errs: make(chan error, 1), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case f := <-c.frames:
		return f, nil
	case err := <-c.errs:
		return nil, err
	case <-c.closed:
		return nil, errors.New("use of closed connection")
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// fakeDialer hands out a fresh fakeConn per Dial and records the urls.
type fakeDialer struct {
	mu    sync.Mutex
	urls  []string
	conns []*fakeConn
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (realtime.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := newFakeConn()
	d.urls = append(d.urls, url)
	d.conns = append(d.conns, c)
	return c, nil
}

func (d *fakeDialer) Conn(t *testing.T, i int) *fakeConn {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d.mu.Lock()
		if i < len(d.conns) {
			c := d.conns[i]
			d.mu.Unlock()
			return c
		}
		d.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("connection %d never dialed", i)
	return nil
}

func (d *fakeDialer) URLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

func startLoop(t *testing.T) *eventloop.Loop {
	t.Helper()
	loop := eventloop.New(64)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(cancel)
	return loop
}

type noticeSink chan Notice

func newSink() noticeSink { return make(noticeSink, 64) }

func (n noticeSink) notify(notice Notice) {
	select {
	case n <- notice:
	default:
	}
}

func (n noticeSink) next(t *testing.T, kind NoticeKind) Notice {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-n:
			if got.Kind == kind {
				return got
			}
		case <-timeout:
			t.Fatalf("no notice of kind %d", kind)
			return Notice{}
		}
	}
}

func (n noticeSink) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case got := <-n:
		t.Fatalf("unexpected notice %+v", got)
	case <-time.After(wait):
	}
}

func listFrame(event string, doc string) []byte {
	return []byte(`{"type":"document_list_update","event_type":"` + event + `","data":` + doc + `}`)
}

func detailFrame(event string, data string) []byte {
	return []byte(`{"type":"document_update","event_type":"` + event + `","data":` + data + `}`)
}
