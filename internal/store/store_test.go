package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/store"
)

func seeded() []bill.Bill {
	return []bill.Bill{
		{ID: "1", Name: "Rent", Amount: 1200, Date: "2025-05-01", Category: "Housing", IsPaid: false},
		{ID: "2", Name: "Internet", Amount: 60, Date: "2025-05-10", Category: "Utilities", IsPaid: false},
	}
}

func loadedStore(t *testing.T, backend *store.MockBackend) *store.Store {
	t.Helper()

	backend.EXPECT().Load(gomock.Any()).Return(seeded(), nil)

	s := store.New(backend)
	require.True(t, s.Loading())

	s.Load(context.Background())
	require.False(t, s.Loading())

	return s
}

func TestLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)

	s := loadedStore(t, backend)

	bills := s.Bills()
	require.Len(t, bills, 2)

	// Sorted by date descending on load.
	assert.Equal(t, "2", bills[0].ID)
	assert.Equal(t, "1", bills[1].ID)
	assert.NoError(t, s.Err())
}

func TestLoad_FailureDegradesToEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)

	backend.EXPECT().Load(gomock.Any()).Return(nil, errors.New("backend unreachable"))

	s := store.New(backend)
	s.Load(context.Background())

	assert.False(t, s.Loading())
	assert.Empty(t, s.Bills())
	assert.Error(t, s.Err())
}

func TestAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	var saved []bill.Bill

	backend.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bills []bill.Bill) error {
			saved = bills
			return nil
		})

	created := s.Add(bill.FormData{
		Name:     "New Bill",
		Amount:   50,
		Date:     "2025-05-15",
		Category: "Other",
		IsPaid:   false,
	})
	s.Wait()

	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "1", created.ID)
	assert.NotEqual(t, "2", created.ID)

	bills := s.Bills()
	require.Len(t, bills, 3)

	// Newest due date sorts first.
	assert.Equal(t, created.ID, bills[0].ID)

	// The full collection was written out.
	assert.Len(t, saved, 3)
	assert.NoError(t, s.Err())
}

func TestUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	backend.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s.Update("1", bill.FormData{
		Name:     "Rent (new lease)",
		Amount:   1350,
		Date:     "2025-05-20",
		Category: "Housing",
		IsPaid:   true,
		Notes:    "increase from June",
	})
	s.Wait()

	bills := s.Bills()
	require.Len(t, bills, 2)

	// Re-sorted: the updated bill now has the latest due date.
	assert.Equal(t, "1", bills[0].ID)
	assert.Equal(t, "Rent (new lease)", bills[0].Name)
	assert.Equal(t, 1350.0, bills[0].Amount)
	assert.True(t, bills[0].IsPaid)
	assert.Equal(t, "increase from June", bills[0].Notes)
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	// No Save expectation: a miss must not trigger a write.
	s.Update("missing", bill.FormData{Name: "Ghost"})
	s.Wait()

	assert.Len(t, s.Bills(), 2)
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	backend.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s.Delete("1")
	s.Wait()

	bills := s.Bills()
	require.Len(t, bills, 1)
	assert.Equal(t, "2", bills[0].ID)
	assert.Equal(t, "Internet", bills[0].Name)
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	s.Delete("missing")
	s.Wait()

	assert.Len(t, s.Bills(), 2)
}

func TestTogglePaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	backend.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	s.TogglePaid("1")
	s.Wait()

	bills := s.Bills()
	require.Len(t, bills, 2)

	for _, b := range bills {
		switch b.ID {
		case "1":
			assert.True(t, b.IsPaid, "bill 1 should flip")
		case "2":
			assert.False(t, b.IsPaid, "bill 2 should be untouched")
		}
	}

	// Toggling twice restores the original value.
	s.TogglePaid("1")
	s.Wait()

	for _, b := range s.Bills() {
		assert.False(t, b.IsPaid)
	}
}

func TestTogglePaid_UnknownIDIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	s.TogglePaid("missing")
	s.Wait()

	assert.Len(t, s.Bills(), 2)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	backend.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	s.Delete("2")
	s.Wait()

	// The mutation sticks: in-memory state is the source of truth.
	assert.Len(t, s.Bills(), 1)
	assert.Error(t, s.Err())

	// A later successful save clears the error.
	backend.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s.TogglePaid("1")
	s.Wait()

	assert.NoError(t, s.Err())
}

func TestBillsReturnsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)
	s := loadedStore(t, backend)

	bills := s.Bills()
	bills[0].Name = "mutated"

	assert.Equal(t, "Internet", s.Bills()[0].Name)
}
