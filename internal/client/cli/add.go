package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

// inputDraft prompts for the document fields. Empty answers keep the values
// of base, so the same flow serves create and edit.
func (a *App) inputDraft(base models.Document) (models.DocumentDraft, error) {
	draft := models.DocumentDraft{Name: base.Name, Company: base.Company, Signers: base.Signers}

	name, err := getSimpleText(a.reader, promptWithDefault("Enter document name", base.Name), a.out)
	if err != nil {
		return draft, err
	}
	if name != "" {
		draft.Name = name
	}
	if draft.Name == "" {
		return draft, fmt.Errorf("document name is required")
	}

	company, err := getSimpleText(a.reader, promptWithDefault("Enter company id", idDefault(base.Company)), a.out)
	if err != nil {
		return draft, err
	}
	if company != "" {
		if draft.Company, err = strconv.ParseInt(company, 10, 64); err != nil {
			return draft, fmt.Errorf("invalid company id %q", company)
		}
	}

	pdf, err := getSimpleText(a.reader, promptWithDefault("Enter PDF url", base.URLPDF), a.out)
	if err != nil {
		return draft, err
	}
	if pdf == "" {
		pdf = base.URLPDF
	}
	if pdf == "" {
		return draft, models.ErrNoSource
	}
	draft.Source = models.URLSource{URL: pdf}

	signers, err := getSigners(a.reader, a.out)
	if err != nil {
		return draft, err
	}
	if len(signers) > 0 {
		draft.Signers = signers
	}
	return draft, nil
}

func promptWithDefault(prompt, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}

func idDefault(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// Add creates a document from a PDF url. It shows up in the list once the
// creation is pushed back.
func (a *App) Add(ctx context.Context) error {
	draft, err := a.inputDraft(models.Document{})
	if err != nil {
		return err
	}
	doc, err := a.listService.Create(ctx, draft)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Document %d created", doc.ID))
	return nil
}

// Edit changes a cached document, prompting with its current values.
func (a *App) Edit(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	base, err := a.listService.Document(ctx, id)
	if err != nil {
		return err
	}
	draft, err := a.inputDraft(base)
	if err != nil {
		return err
	}
	if _, err := a.listService.Update(ctx, id, draft); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Document %d updated", id))
	return nil
}
