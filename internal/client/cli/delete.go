package cli

import (
	"context"
	"fmt"
)

// Delete asks the server to delete a document. The list drops it when the
// deletion is pushed back.
func (a *App) Delete(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	if err := a.listService.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Delete of document %d requested", id))
	return nil
}

// Sync asks the server to refresh a document's signature status.
func (a *App) Sync(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	res, err := a.listService.SyncStatus(ctx, id)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = "Status synced"
	}
	if res.NewStatus != "" {
		msg = fmt.Sprintf("%s (%s)", msg, res.NewStatus)
	}
	printlnFn(msg)
	return nil
}
