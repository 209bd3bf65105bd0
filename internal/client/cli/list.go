package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/risk"
	"github.com/dmitrijs2005/docwatch/internal/client/view"
)

const dateLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func table(write func(w *tabwriter.Writer)) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	write(w)
	_ = w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func documentTable(docs []models.Document, names models.CompanyNames) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCOMPANY\tCREATED\tANALYSIS")
		for _, d := range docs {
			status := string(d.Status)
			if d.Syncing {
				status += " (syncing)"
			}
			analysis := string(d.AnalysisStatus())
			if analysis == "" {
				analysis = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				d.ID, d.Name, status, names.Name(d.Company), formatTime(d.CreatedAt), analysis)
		}
	})
}

func (a *App) printDocuments(ctx context.Context, docs []models.Document) error {
	if len(docs) == 0 {
		printlnFn("No documents")
		return nil
	}
	names, err := a.listService.CompanyNames(ctx)
	if err != nil {
		return err
	}
	printlnFn(documentTable(docs, names))
	return nil
}

// List prints the current view: search and sort applied.
func (a *App) List(ctx context.Context) error {
	docs, err := a.listService.View(ctx)
	if err != nil {
		return err
	}
	return a.printDocuments(ctx, docs)
}

// Search sets the search term; an empty term shows every document.
func (a *App) Search(ctx context.Context, term string) error {
	docs, err := a.listService.Search(ctx, term)
	if err != nil {
		return err
	}
	return a.printDocuments(ctx, docs)
}

// Sort sorts by column; sorting by the active column reverses it.
func (a *App) Sort(ctx context.Context, column string) error {
	key, err := view.ParseSortKey(column)
	if err != nil {
		return err
	}
	docs, err := a.listService.SortBy(ctx, key)
	if err != nil {
		return err
	}
	q, err := a.listService.Query(ctx)
	if err != nil {
		return err
	}
	printlnFn("Sorted by", q.Sort.Key, q.Sort.Direction)
	return a.printDocuments(ctx, docs)
}

// Risk prints the open documents by age, oldest first, optionally limited
// to one bucket.
func (a *App) Risk(ctx context.Context, level string) error {
	l, err := risk.ParseLevel(level)
	if err != nil {
		return err
	}
	pending, err := a.listService.RiskDashboard(ctx, l)
	if err != nil {
		return err
	}
	sum, err := a.listService.Risk(ctx)
	if err != nil {
		return err
	}
	names, err := a.listService.CompanyNames(ctx)
	if err != nil {
		return err
	}

	printlnFn(summaryLine(sum))
	if len(pending) == 0 {
		printlnFn("No open documents")
		return nil
	}
	printlnFn(table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tDAYS\tRISK")
		for _, p := range pending {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
				p.ID, p.Name, names.Name(p.Company), p.DaysPending, p.Level.Label())
		}
	}))
	return nil
}

// Summary prints the risk counts of the open documents.
func (a *App) Summary(ctx context.Context) error {
	sum, err := a.listService.Risk(ctx)
	if err != nil {
		return err
	}
	printlnFn(table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Open documents\t%d\n", sum.Total)
		for _, l := range risk.Levels {
			fmt.Fprintf(w, "%s\t%d\n", l.Label(), sum.Count(l))
		}
	}))
	return nil
}

func (a *App) Companies(ctx context.Context) error {
	companies, err := a.listService.Companies(ctx)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		printlnFn("No companies")
		return nil
	}
	printlnFn(table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range companies {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
	}))
	return nil
}

// Status prints the load result and both channel states.
func (a *App) Status(ctx context.Context) error {
	st, err := a.listService.Status(ctx)
	if err != nil {
		return err
	}
	printlnFn(table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Documents\t%d\n", st.Documents)
		fmt.Fprintf(w, "List channel\t%s\n", st.Realtime)
		fmt.Fprintf(w, "Document channel\t%s\n", a.detailService.RealtimeState())
		if st.LoadErr != nil {
			fmt.Fprintf(w, "Load error\t%s\n", errText(st.LoadErr))
		}
		if st.RealtimeErr != nil {
			fmt.Fprintf(w, "Live updates\t%s\n", errText(st.RealtimeErr))
		}
	}))
	return nil
}
