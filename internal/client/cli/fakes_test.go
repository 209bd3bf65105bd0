package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/docwatch/internal/client/client"
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/realtime"
	"github.com/dmitrijs2005/docwatch/internal/client/risk"
	"github.com/dmitrijs2005/docwatch/internal/client/services"
	"github.com/dmitrijs2005/docwatch/internal/client/view"
	"github.com/dmitrijs2005/docwatch/internal/logging"
)

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

func (o *output) String() string {
	return strings.Join(o.Lines(), "\n")
}

// captureOutput replaces printlnFn for the test and collects the printed
// lines.
func captureOutput(t *testing.T) *output {
	t.Helper()
	out := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.lines = append(out.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type fakeAuth struct {
	loggedIn bool
	user     string
	password string
	err      error
}

func (f *fakeAuth) Login(ctx context.Context, username string, password []byte) error {
	if f.err != nil {
		return f.err
	}
	f.user, f.password, f.loggedIn = username, string(password), true
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context) { f.loggedIn = false }
func (f *fakeAuth) IsLoggedIn() bool           { return f.loggedIn }

// fakeList implements services.DocumentListService. Unset methods panic
// through the embedded nil interface.
type fakeList struct {
	services.DocumentListService

	docs      []models.Document
	companies []models.Company
	pending   []risk.PendingDocument
	summary   risk.Summary
	status    services.ListStatus
	err       error

	calls     []string
	search    string
	sortKey   view.SortKey
	level     risk.Level
	synced    int64
	deleted   int64
	created   models.DocumentDraft
	updated   models.DocumentDraft
	updatedID int64
}

func (f *fakeList) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeList) Load(ctx context.Context) error {
	f.record("load")
	return f.err
}

func (f *fakeList) OpenRealtime(ctx context.Context) error {
	f.record("realtime")
	return nil
}

func (f *fakeList) Close() { f.record("close") }

func (f *fakeList) View(ctx context.Context) ([]models.Document, error) {
	return f.docs, f.err
}

func (f *fakeList) Search(ctx context.Context, term string) ([]models.Document, error) {
	f.search = term
	return f.docs, f.err
}

func (f *fakeList) SortBy(ctx context.Context, key view.SortKey) ([]models.Document, error) {
	f.sortKey = key
	return f.docs, f.err
}

func (f *fakeList) Query(ctx context.Context) (view.Query, error) {
	return view.Query{Search: f.search, Sort: view.SortState{Key: f.sortKey, Direction: view.Asc}}, nil
}

func (f *fakeList) Risk(ctx context.Context) (risk.Summary, error) {
	return f.summary, f.err
}

func (f *fakeList) RiskDashboard(ctx context.Context, level risk.Level) ([]risk.PendingDocument, error) {
	f.level = level
	return f.pending, f.err
}

func (f *fakeList) Companies(ctx context.Context) ([]models.Company, error) {
	return f.companies, f.err
}

func (f *fakeList) CompanyNames(ctx context.Context) (models.CompanyNames, error) {
	return models.NewCompanyNames(f.companies), nil
}

func (f *fakeList) Document(ctx context.Context, id int64) (models.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Document{}, services.ErrDocumentNotCached
}

func (f *fakeList) Status(ctx context.Context) (services.ListStatus, error) {
	return f.status, nil
}

func (f *fakeList) SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error) {
	f.synced = id
	if f.err != nil {
		return models.SyncStatusResult{}, f.err
	}
	return models.SyncStatusResult{NewStatus: models.StatusSigned, Message: "Status atualizado"}, nil
}

func (f *fakeList) Delete(ctx context.Context, id int64) error {
	f.deleted = id
	return f.err
}

func (f *fakeList) Create(ctx context.Context, draft models.DocumentDraft) (models.Document, error) {
	f.created = draft
	return models.Document{ID: 77, Name: draft.Name}, f.err
}

func (f *fakeList) Update(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error) {
	f.updatedID, f.updated = id, draft
	return models.Document{ID: id, Name: draft.Name}, f.err
}

type fakeDetail struct {
	services.DocumentDetailService

	doc        models.Document
	processing bool
	err        error

	opened int64
	closed int
}

func (f *fakeDetail) Open(ctx context.Context, id int64) (models.Document, error) {
	f.opened = id
	return f.doc, f.err
}

func (f *fakeDetail) Processing(ctx context.Context) (bool, error) { return f.processing, nil }

func (f *fakeDetail) Reanalyze(ctx context.Context) (models.ReanalyzeResult, error) {
	if f.err != nil {
		return models.ReanalyzeResult{}, f.err
	}
	return models.ReanalyzeResult{DocumentID: f.doc.ID, Status: "pending", Message: "Reanálise iniciada"}, nil
}

func (f *fakeDetail) PDFURL(ctx context.Context) (string, error) {
	return "https://files.example.com/signed.pdf", f.err
}

func (f *fakeDetail) RealtimeState() realtime.State { return realtime.Connected }
func (f *fakeDetail) Close()                        { f.closed++ }

func newTestApp(list *fakeList, detail *fakeDetail, r *bufio.Reader) *App {
	return &App{
		log:           logging.NewNop(),
		authService:   &fakeAuth{loggedIn: true},
		listService:   list,
		detailService: detail,
		notices:       make(chan services.Notice, noticeBuffer),
		reader:        r,
		out:           io.Discard,
	}
}

var errOffline = fmt.Errorf("list documents: %w", client.ErrUnavailable)
