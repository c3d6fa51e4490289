package journal_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/journal"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/spell/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestStore_PutAndGet(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), ".spell", "journal.json")

	store, err := journal.NewStore(storePath)
	require.NoError(t, err)

	got, err := store.Get("link")
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := domain.RunRecord{
		TaskName:   "link",
		RunID:      "run-1",
		Status:     domain.StatusSucceeded,
		ArgsDigest: "abc",
		Commands:   1,
		Timestamp:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(rec))

	got, err = store.Get("link")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestStore_Persistence(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "journal.json")

	store1, err := journal.NewStore(storePath)
	require.NoError(t, err)
	require.NoError(t, store1.Put(domain.RunRecord{TaskName: "run", RunID: "a", Status: domain.StatusSkipped}))

	store2, err := journal.NewStore(storePath)
	require.NoError(t, err)

	got, err := store2.Get("run")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].RunID)
	assert.Equal(t, domain.StatusSkipped, got[0].Status)
}

func TestStore_KeepsBoundedHistory(t *testing.T) {
	store, err := journal.NewStore(filepath.Join(t.TempDir(), "journal.json"))
	require.NoError(t, err)

	total := domain.JournalHistoryLimit + 5
	for i := range total {
		require.NoError(t, store.Put(domain.RunRecord{TaskName: "t", RunID: fmt.Sprintf("run-%d", i)}))
	}

	got, err := store.Get("t")
	require.NoError(t, err)
	require.Len(t, got, domain.JournalHistoryLimit)
	assert.Equal(t, "run-5", got[0].RunID)
	assert.Equal(t, fmt.Sprintf("run-%d", total-1), got[len(got)-1].RunID)
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0o600))

	_, err := journal.NewStore(storePath)
	require.ErrorIs(t, err, domain.ErrJournalReadFailed)
}

func TestOpen_CorruptFileIsReplaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	storePath := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0o600))

	store := journal.Open(storePath, log)
	got, err := store.Get("link")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(domain.RunRecord{TaskName: "link", RunID: "fresh", Status: domain.StatusSucceeded}))

	reread, err := journal.NewStore(storePath)
	require.NoError(t, err)
	got, err = reread.Get("link")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].RunID)
}

func TestOpen_SetRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	projectA, projectB := t.TempDir(), t.TempDir()
	store := journal.Open(domain.DefaultJournalPath(), log)

	store.SetRoot(projectA)
	assert.Equal(t, filepath.Join(projectA, ".spell", "journal.json"), store.Path())
	require.NoError(t, store.Put(domain.RunRecord{TaskName: "link", RunID: "a"}))

	store.SetRoot(projectB)
	got, err := store.Get("link")
	require.NoError(t, err)
	assert.Empty(t, got)

	store.SetRoot(projectA)
	got, err = store.Get("link")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].RunID)
}
