package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/logging"
	"github.com/dmitrijs2005/indexkeeper/internal/server/auth"
	"github.com/dmitrijs2005/indexkeeper/internal/server/jobs"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/dmitrijs2005/indexkeeper/internal/server/registry"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/indexsets"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeIndexStore struct {
	indices map[string][]string
	deleted []string
}

func (f *fakeIndexStore) List(ctx context.Context, prefix string) ([]string, error) {
	return f.indices[prefix], nil
}

func (f *fakeIndexStore) Delete(ctx context.Context, index string) error {
	f.deleted = append(f.deleted, index)
	return nil
}

type fakeScheduler struct {
	submitted []jobs.Job
	rejectAll bool
}

func (f *fakeScheduler) Submit(ctx context.Context, job jobs.Job) error {
	if f.rejectAll {
		return fmt.Errorf("%w: %s", common.ErrConcurrencyLimit, job.Class())
	}
	f.submitted = append(f.submitted, job)
	return nil
}

func allowAll(action, id string) bool { return true }

func allowOnly(ids ...string) auth.CheckerFunc {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return func(action, id string) bool {
		_, ok := allowed[id]
		return ok
	}
}

func denyAll(action, id string) bool { return false }

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fixture struct {
	repo      *indexsets.MemoryRepository
	store     *fakeIndexStore
	scheduler *fakeScheduler
	svc       *IndexSetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := indexsets.NewMemoryRepository()
	store := &fakeIndexStore{indices: make(map[string][]string)}
	scheduler := &fakeScheduler{}
	svc := NewIndexSetService(repo, registry.NewStoreRegistry(repo, store), scheduler, discardLogger())
	return &fixture{repo: repo, store: store, scheduler: scheduler, svc: svc}
}

func (f *fixture) seed(t *testing.T, title string, isDefault bool) string {
	t.Helper()
	saved, err := f.repo.Save(context.Background(), &models.IndexSetConfig{
		Title:             title,
		IndexPrefix:       "p-" + title,
		Shards:            1,
		RotationStrategy:  models.StrategyConfig{Type: "time"},
		RetentionStrategy: models.StrategyConfig{Type: "delete"},
		Default:           isDefault,
	})
	require.NoError(t, err)
	return saved.ID
}

// ---- List ----

func TestList_UnpagedReturnsOnlyPermitted(t *testing.T) {
	f := newFixture(t)
	idA := f.seed(t, "a-default", true)
	idB := f.seed(t, "b-logs", false)
	_ = idA

	count, items, err := f.svc.List(context.Background(), 0, 0, allowOnly(idB))
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Len(t, items, 1)
	require.Equal(t, idB, items[0].ID)
}

func TestList_UnpagedCountEqualsItems(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.seed(t, fmt.Sprintf("set-%d", i), false)
	}

	count, items, err := f.svc.List(context.Background(), 0, 0, auth.CheckerFunc(allowAll))
	require.NoError(t, err)
	require.Equal(t, len(items), count)
	require.Equal(t, 5, count)
}

func TestList_PagedCountIsPermittedPopulation(t *testing.T) {
	f := newFixture(t)
	var permitted []string
	for i := 0; i < 6; i++ {
		id := f.seed(t, fmt.Sprintf("set-%d", i), false)
		if i%2 == 0 {
			permitted = append(permitted, id)
		}
	}
	checker := allowOnly(permitted...)

	for _, skip := range []int{0, 1, 2, 99} {
		count, items, err := f.svc.List(context.Background(), skip, 2, checker)
		require.NoError(t, err)
		require.Equal(t, 3, count, "count must not depend on skip=%d", skip)
		require.LessOrEqual(t, len(items), 2)
		for _, item := range items {
			require.Contains(t, permitted, item.ID)
		}
	}
}

func TestList_SkipBeyondPopulation(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "only", false)

	count, items, err := f.svc.List(context.Background(), 10, 5, allowOnly(id))
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Empty(t, items)
}

func TestList_PagedNoPermissions(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "hidden", false)

	count, items, err := f.svc.List(context.Background(), 0, 10, auth.CheckerFunc(denyAll))
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Empty(t, items)
}

func TestList_ScenarioDefaultAndPermittedB(t *testing.T) {
	// Store has {A(default), B}; caller may read only B.
	f := newFixture(t)
	f.seed(t, "A", true)
	idB := f.seed(t, "B", false)

	count, items, err := f.svc.List(context.Background(), 0, 10, allowOnly(idB))
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Len(t, items, 1)
	require.Equal(t, idB, items[0].ID)
}

// ---- Get ----

func TestGet_UnauthorizedBeforeNotFound(t *testing.T) {
	f := newFixture(t)

	// Unknown id without permission: the caller must not learn whether
	// it exists.
	_, err := f.svc.Get(context.Background(), "whatever", auth.CheckerFunc(denyAll))
	require.True(t, errors.Is(err, common.ErrorUnauthorized))

	_, err = f.svc.Get(context.Background(), "whatever", auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestGet_ReturnsSummary(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "readable", false)

	got, err := f.svc.Get(context.Background(), id, auth.CheckerFunc(allowAll))
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "readable", got.Title)
}

// ---- Create ----

func newSummary() *models.IndexSetSummary {
	return &models.IndexSetSummary{
		Title:             "fresh",
		IndexPrefix:       "fresh",
		Shards:            2,
		RotationStrategy:  models.StrategyConfig{Type: "time"},
		RetentionStrategy: models.StrategyConfig{Type: "delete"},
	}
}

func TestCreate_AssignsID(t *testing.T) {
	f := newFixture(t)

	saved, err := f.svc.Create(context.Background(), newSummary(), auth.CheckerFunc(allowAll))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := f.repo.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, "fresh", got.Title)
}

func TestCreate_Unauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), newSummary(), auth.CheckerFunc(denyAll))
	require.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestCreate_RejectsPresetID(t *testing.T) {
	f := newFixture(t)

	s := newSummary()
	s.ID = "preset"
	_, err := f.svc.Create(context.Background(), s, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorBadRequest))
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	f := newFixture(t)

	s := newSummary()
	s.Shards = 0
	_, err := f.svc.Create(context.Background(), s, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorValidation))
}

// ---- Update ----

func TestUpdate_IDMismatchConflictLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "original", false)

	payload := newSummary()
	payload.ID = "different"
	payload.Title = "changed"

	_, err := f.svc.Update(context.Background(), id, payload, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorConflict))

	got, err := f.repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "original", got.Title, "conflicting update must not mutate the stored config")
}

func TestUpdate_PersistsUnderPathID(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "original", false)

	payload := newSummary()
	payload.Title = "renamed"

	saved, err := f.svc.Update(context.Background(), id, payload, auth.CheckerFunc(allowAll))
	require.NoError(t, err)
	require.Equal(t, id, saved.ID)
	require.Equal(t, "renamed", saved.Title)

	got, err := f.repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
}

func TestUpdate_PreservesCreationTimestamp(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "original", false)

	before, err := f.repo.Get(context.Background(), id)
	require.NoError(t, err)

	payload := newSummary()
	payload.Title = "renamed"

	saved, err := f.svc.Update(context.Background(), id, payload, auth.CheckerFunc(allowAll))
	require.NoError(t, err)
	require.True(t, saved.CreatedAt.Equal(before.CreatedAt),
		"returned CreatedAt must match the stored one")

	after, err := f.repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, after.CreatedAt.Equal(before.CreatedAt),
		"stored CreatedAt must not change on update")
}

func TestUpdate_MatchingPayloadIDAllowed(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "original", false)

	payload := newSummary()
	payload.ID = id

	_, err := f.svc.Update(context.Background(), id, payload, auth.CheckerFunc(allowAll))
	require.NoError(t, err)
}

func TestUpdate_Unauthorized(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "original", false)

	_, err := f.svc.Update(context.Background(), id, newSummary(), auth.CheckerFunc(denyAll))
	require.True(t, errors.Is(err, common.ErrorUnauthorized))
}

// ---- Delete ----

func TestDelete_HappyPathSubmitsCleanup(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "doomed", false)

	err := f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll))
	require.NoError(t, err)

	_, err = f.repo.Get(context.Background(), id)
	require.True(t, errors.Is(err, common.ErrorNotFound))

	require.Len(t, f.scheduler.submitted, 1)
	require.Equal(t, jobs.CleanupJobClass, f.scheduler.submitted[0].Class())
}

func TestDelete_Unauthorized(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "protected", false)

	err := f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(denyAll))
	require.True(t, errors.Is(err, common.ErrorUnauthorized))

	// Nothing was mutated.
	_, err = f.repo.Get(context.Background(), id)
	require.NoError(t, err)
}

func TestDelete_DefaultSetAlwaysRejected(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "the-default", true)

	err := f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorBadRequest))

	// The config survives and no cleanup was scheduled.
	_, err = f.repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Empty(t, f.scheduler.submitted)
}

func TestDelete_TwiceYieldsNotFound(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "doomed", false)

	require.NoError(t, f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll)))

	err := f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestDelete_UnknownID(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), "missing", true, auth.CheckerFunc(allowAll))
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestDelete_SkipsCleanupWhenNotRequested(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "keep-indices", false)

	require.NoError(t, f.svc.Delete(context.Background(), id, false, auth.CheckerFunc(allowAll)))
	require.Empty(t, f.scheduler.submitted)
}

func TestDelete_SchedulerRejectionSwallowed(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "contended", false)
	f.scheduler.rejectAll = true

	// The scheduler slot is occupied; the delete call must still succeed
	// and the config must be gone.
	err := f.svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll))
	require.NoError(t, err)

	_, err = f.repo.Get(context.Background(), id)
	require.True(t, errors.Is(err, common.ErrorNotFound))
	require.Empty(t, f.scheduler.submitted)
}

func TestDelete_SchedulerRejectionIsLogged(t *testing.T) {
	f := newFixture(t)
	id := f.seed(t, "contended", false)
	f.scheduler.rejectAll = true

	var buf captureBuffer
	svc := NewIndexSetService(f.repo, registry.NewStoreRegistry(f.repo, f.store), f.scheduler,
		logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	require.NoError(t, svc.Delete(context.Background(), id, true, auth.CheckerFunc(allowAll)))
	require.Contains(t, buf.String(), "error submitting cleanup job")
	require.Contains(t, buf.String(), "level=ERROR")
}

type captureBuffer struct {
	data []byte
}

func (b *captureBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *captureBuffer) String() string {
	return string(b.data)
}
