package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/testutil"
)

func testSnapshot(id string, createdAt time.Time) model.Snapshot {
	return model.Snapshot{
		ID:        id,
		CreatedAt: createdAt,
		Persona:   "주거",
		Analysis:  map[model.Category]float64{model.CategoryHousing: 500000},
		Records: []model.Record{
			{RawCategory: "주거", Item: "월세", Amount: 500000, Resolved: model.CategoryHousing},
		},
	}
}

// sizedModel builds a browser over a fresh store and gives it a terminal
// size so the list renders and selects items.
func sizedModel(t *testing.T, ctx context.Context, userID string) Model {
	t.Helper()

	store := testutil.SetupTestDB(t)
	m := NewModel(ctx, store, userID)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModelUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("loaded snapshots populate the list", func(t *testing.T) {
		m := sizedModel(t, ctx, "alice")

		updated, _ := m.Update(snapshotsLoadedMsg{snapshots: []model.Snapshot{
			testSnapshot("snap-1", time.Now().UTC()),
			testSnapshot("snap-2", time.Now().UTC().Add(-time.Hour)),
		}})
		m = updated.(Model)

		assert.Len(t, m.list.Items(), 2)
	})

	t.Run("enter opens the selected snapshot", func(t *testing.T) {
		m := sizedModel(t, ctx, "alice")
		updated, _ := m.Update(snapshotsLoadedMsg{snapshots: []model.Snapshot{
			testSnapshot("snap-1", time.Now().UTC()),
		}})
		m = updated.(Model)

		updated, _ = m.Update(keyMsg("enter"))
		m = updated.(Model)

		assert.Equal(t, StateDetail, m.state)
		require.NotNil(t, m.viewing)
		assert.Equal(t, "snap-1", m.viewing.ID)
		assert.Contains(t, m.View(), "홈 메이커")
	})

	t.Run("esc returns to the list", func(t *testing.T) {
		m := sizedModel(t, ctx, "alice")
		updated, _ := m.Update(snapshotsLoadedMsg{snapshots: []model.Snapshot{
			testSnapshot("snap-1", time.Now().UTC()),
		}})
		m = updated.(Model)
		updated, _ = m.Update(keyMsg("enter"))
		m = updated.(Model)

		updated, _ = m.Update(keyMsg("esc"))
		m = updated.(Model)

		assert.Equal(t, StateList, m.state)
		assert.Nil(t, m.viewing)
	})

	t.Run("delete key removes the snapshot from the store", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		require.NoError(t, store.SaveSnapshot(ctx, "alice", testSnapshot("snap-1", time.Now().UTC())))

		m := NewModel(ctx, store, "alice")
		updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		m = updated.(Model)

		msg := m.loadSnapshots()()
		loaded, ok := msg.(snapshotsLoadedMsg)
		require.True(t, ok)
		require.Len(t, loaded.snapshots, 1)

		updated, _ = m.Update(loaded)
		m = updated.(Model)

		_, cmd := m.Update(keyMsg("d"))
		require.NotNil(t, cmd)

		deleted, ok := cmd().(snapshotDeletedMsg)
		require.True(t, ok)
		assert.Equal(t, "snap-1", deleted.id)

		remaining, err := store.ListSnapshots(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("error message is kept for the view", func(t *testing.T) {
		m := sizedModel(t, ctx, "alice")

		updated, _ := m.Update(errMsg{err: errors.New("load failed")})
		m = updated.(Model)

		assert.Contains(t, m.View(), "load failed")
	})

	t.Run("q quits", func(t *testing.T) {
		m := sizedModel(t, ctx, "alice")

		updated, cmd := m.Update(keyMsg("q"))
		m = updated.(Model)

		assert.True(t, m.quitting)
		require.NotNil(t, cmd)
		assert.Empty(t, m.View())
	})
}
