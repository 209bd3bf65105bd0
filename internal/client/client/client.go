package client

import (
	"context"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

// Client is the backend contract used by the services.
type Client interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	LoggedIn() bool
	// AccessToken returns a non-expired access token, refreshing it first
	// when needed. Used to authenticate push channels.
	AccessToken(ctx context.Context) (string, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id int64) (models.Document, error)
	CreateDocument(ctx context.Context, draft models.DocumentDraft) (models.Document, error)
	UpdateDocument(ctx context.Context, id int64, draft models.DocumentDraft) (models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	SyncStatus(ctx context.Context, id int64) (models.SyncStatusResult, error)
	Reanalyze(ctx context.Context, id int64) (models.ReanalyzeResult, error)
	PDFURL(ctx context.Context, id int64) (string, error)

	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id int64) (models.Company, error)
}
