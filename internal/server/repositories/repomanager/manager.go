package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/indexkeeper/internal/dbx"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/indexsets"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	IndexSets(db dbx.DBTX) indexsets.Repository
}
