package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/indexkeeper/internal/client/client"
	"github.com/dmitrijs2005/indexkeeper/internal/client/config"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// apiClient is the subset of the HTTP client the console uses. Satisfied by
// *client.HTTPClient; tests substitute a fake.
type apiClient interface {
	ListIndexSets(ctx context.Context, skip, limit int) (*client.ListResult, error)
	GetIndexSet(ctx context.Context, id string) (*models.IndexSetSummary, error)
	CreateIndexSet(ctx context.Context, summary *models.IndexSetSummary) (*models.IndexSetSummary, error)
	UpdateIndexSet(ctx context.Context, id string, summary *models.IndexSetSummary) (*models.IndexSetSummary, error)
	DeleteIndexSet(ctx context.Context, id string, deleteIndices bool) error
}

// App is the interactive console. It holds no token until Login mints one.
type App struct {
	config *config.Config
	reader *bufio.Reader
	out    io.Writer
	api    apiClient
}

func NewApp(cfg *config.Config) (*App, error) {
	return &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api != nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
