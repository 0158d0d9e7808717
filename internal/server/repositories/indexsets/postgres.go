package indexsets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/dbx"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/google/uuid"
)

const indexSetColumns = `id, title, index_prefix, shards, replicas, rotation_strategy, retention_strategy, is_default, created_at`

// PostgresRepository implements index set storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanIndexSet(scan func(dest ...any) error) (*models.IndexSetConfig, error) {
	var cfg models.IndexSetConfig
	var rotation, retention []byte

	if err := scan(
		&cfg.ID, &cfg.Title, &cfg.IndexPrefix, &cfg.Shards, &cfg.Replicas,
		&rotation, &retention, &cfg.Default, &cfg.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rotation, &cfg.RotationStrategy); err != nil {
		return nil, fmt.Errorf("invalid rotation strategy for %s: %w", cfg.ID, err)
	}
	if err := json.Unmarshal(retention, &cfg.RetentionStrategy); err != nil {
		return nil, fmt.Errorf("invalid retention strategy for %s: %w", cfg.ID, err)
	}

	return &cfg, nil
}

func (r *PostgresRepository) queryIndexSets(ctx context.Context, query string, args ...any) ([]*models.IndexSetConfig, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select index sets: %w", err)
	}
	defer rows.Close()

	var result []*models.IndexSetConfig
	for rows.Next() {
		cfg, err := scanIndexSet(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindAll returns every stored config ordered by title.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.IndexSetConfig, error) {
	query := `SELECT ` + indexSetColumns + ` FROM index_sets ORDER BY title, id`
	return r.queryIndexSets(ctx, query)
}

// FindPaginated returns one page of configs whose id is in ids, in the same
// order as FindAll. An empty id set yields an empty page without touching
// the database.
func (r *PostgresRepository) FindPaginated(ctx context.Context, ids []string, limit, skip int) ([]*models.IndexSetConfig, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, id)
	}
	args = append(args, limit, skip)

	query := fmt.Sprintf(
		`SELECT %s FROM index_sets WHERE id IN (%s) ORDER BY title, id LIMIT $%d OFFSET $%d`,
		indexSetColumns, strings.Join(placeholders, ", "), len(ids)+1, len(ids)+2,
	)

	return r.queryIndexSets(ctx, query, args...)
}

// Get loads a single config by id. Returns common.ErrorNotFound when no
// row exists.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.IndexSetConfig, error) {
	query := `SELECT ` + indexSetColumns + ` FROM index_sets WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	cfg, err := scanIndexSet(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return cfg, nil
}

// Save upserts a config by id. A config without an id gets a fresh one and
// a creation timestamp before the insert. On update the stored row keeps
// its creation timestamp and the returned config carries that stored value,
// not whatever the payload said.
func (r *PostgresRepository) Save(ctx context.Context, cfg *models.IndexSetConfig) (*models.IndexSetConfig, error) {
	saved := *cfg
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}

	rotation, err := json.Marshal(saved.RotationStrategy)
	if err != nil {
		return nil, fmt.Errorf("rotation strategy marshal error: %w", err)
	}
	retention, err := json.Marshal(saved.RetentionStrategy)
	if err != nil {
		return nil, fmt.Errorf("retention strategy marshal error: %w", err)
	}

	query := `
		INSERT INTO index_sets (id, title, index_prefix, shards, replicas, rotation_strategy, retention_strategy, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			index_prefix = EXCLUDED.index_prefix,
			shards = EXCLUDED.shards,
			replicas = EXCLUDED.replicas,
			rotation_strategy = EXCLUDED.rotation_strategy,
			retention_strategy = EXCLUDED.retention_strategy,
			is_default = EXCLUDED.is_default
		RETURNING created_at;
	`
	row := r.db.QueryRowContext(ctx, query,
		saved.ID, saved.Title, saved.IndexPrefix, saved.Shards, saved.Replicas,
		rotation, retention, saved.Default, saved.CreatedAt)
	if err := row.Scan(&saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &saved, nil
}

// Delete removes a config by id and reports how many rows went away.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM index_sets WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
