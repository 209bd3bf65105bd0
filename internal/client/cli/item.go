package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return id, nil
}

func documentDetail(d models.Document, names models.CompanyNames, processing bool) string {
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "ID\t%d\n", d.ID)
		fmt.Fprintf(w, "Name\t%s\n", d.Name)
		fmt.Fprintf(w, "Status\t%s\n", d.Status)
		fmt.Fprintf(w, "Company\t%s\n", names.Name(d.Company))
		fmt.Fprintf(w, "Created\t%s\n", formatTime(d.CreatedAt))
		fmt.Fprintf(w, "Updated\t%s\n", formatTime(d.LastUpdatedAt))
		if d.CreatedBy != "" {
			fmt.Fprintf(w, "Created by\t%s\n", d.CreatedBy)
		}
		if d.URLPDF != "" {
			fmt.Fprintf(w, "PDF\t%s\n", d.URLPDF)
		}
		for _, s := range d.Signers {
			fmt.Fprintf(w, "Signer\t%s <%s> %s\n", s.Name, s.Email, s.Status)
		}
		if d.Analysis == nil {
			fmt.Fprintln(w, "Analysis\t-")
			return
		}
		status := string(d.Analysis.Status)
		if processing {
			status += " (following)"
		}
		fmt.Fprintf(w, "Analysis\t%s\n", status)
		if d.Analysis.Summary != "" {
			fmt.Fprintf(w, "Summary\t%s\n", d.Analysis.Summary)
		}
		for _, t := range d.Analysis.MissingTopics {
			fmt.Fprintf(w, "Missing\t%s\n", t)
		}
		for _, i := range d.Analysis.Insights {
			fmt.Fprintf(w, "Insight\t%s\n", i)
		}
	})
}

// Show opens a document. While its analysis runs, progress is printed as
// it arrives.
func (a *App) Show(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	doc, err := a.detailService.Open(ctx, id)
	if err != nil {
		return err
	}
	processing, err := a.detailService.Processing(ctx)
	if err != nil {
		return err
	}
	names, err := a.listService.CompanyNames(ctx)
	if err != nil {
		return err
	}
	printlnFn(documentDetail(doc, names, processing))
	return nil
}

// Reanalyze requests a new AI analysis of the open document.
func (a *App) Reanalyze(ctx context.Context) error {
	res, err := a.detailService.Reanalyze(ctx)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = "Reanalysis requested"
	}
	printlnFn(msg)
	return nil
}

// PDF prints the signed file link of the open document.
func (a *App) PDF(ctx context.Context) error {
	u, err := a.detailService.PDFURL(ctx)
	if err != nil {
		return err
	}
	printlnFn(u)
	return nil
}

func (a *App) CloseDocument(ctx context.Context) error {
	a.detailService.Close()
	return nil
}
