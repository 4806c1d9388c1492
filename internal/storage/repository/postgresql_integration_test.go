package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		FirstName:    "Ivan",
		LastName:     "Petrov",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	// Повторная регистрация того же username нарушает уникальность
	_, err = storage.RegisterUser(ctx, models.User{
		Username:     "testuser",
		PasswordHash: "otherhash",
	})
	require.Error(t, err)
}

func TestStorage_GetUserByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "testuser", "hashedpassword")

	ctx := context.Background()

	got, err := storage.GetUserByUsername(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	assert.Equal(t, "hashedpassword", got.PasswordHash)

	// username сравнивается с учетом регистра
	_, err = storage.GetUserByUsername(ctx, "TestUser")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = storage.GetUserByUsername(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorage_CreateAndReadExpense(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner", "hash")
	strangerUID := factory.CreateUser(t, "stranger", "hash")

	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	id, err := storage.CreateExpense(ctx, models.Expense{
		UserUID:     ownerUID,
		Amount:      decimal.RequireFromString("99.90"),
		Timestamp:   ts,
		Category:    "food",
		Description: "groceries",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := storage.ReadExpense(ctx, id, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, ownerUID, got.UserUID)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("99.90")))
	assert.Equal(t, "food", got.Category)

	// Чужая запись неотличима от несуществующей
	_, err = storage.ReadExpense(ctx, id, strangerUID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorage_UpdateExpense(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner", "hash")
	strangerUID := factory.CreateUser(t, "stranger", "hash")

	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	id := factory.CreateExpense(t, ownerUID, "10.00", ts, "food")

	updated := models.Expense{
		Amount:    decimal.RequireFromString("25.50"),
		Timestamp: ts,
		Category:  "cinema",
	}

	// Чужой пользователь ничего не меняет
	count, err := storage.UpdateExpense(ctx, updated, id, strangerUID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = storage.UpdateExpense(ctx, updated, id, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.ReadExpense(ctx, id, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, "cinema", got.Category)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("25.50")))
}

func TestStorage_RemoveExpense(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner", "hash")
	strangerUID := factory.CreateUser(t, "stranger", "hash")

	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	id := factory.CreateExpense(t, ownerUID, "10.00", ts, "food")

	// Чужой пользователь ничего не удаляет
	count, err := storage.RemoveExpense(ctx, id, strangerUID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	factory.VerifyExpenseCount(t, ownerUID, 1)

	count, err = storage.RemoveExpense(ctx, id, ownerUID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	factory.VerifyExpenseCount(t, ownerUID, 0)
}

func TestStorage_ListExpenses(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	firstUID := factory.CreateUser(t, "user1", "hash")
	secondUID := factory.CreateUser(t, "user2", "hash")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateExpense(t, firstUID, "10.00", base, "food")
	factory.CreateExpense(t, firstUID, "20.00", base.AddDate(0, 0, 1), "gas")
	factory.CreateExpense(t, firstUID, "30.00", base.AddDate(0, 0, 2), "food")
	factory.CreateExpense(t, secondUID, "99.00", base, "books")

	ctx := context.Background()

	t.Run("список ограничен записями пользователя", func(t *testing.T) {
		got, err := storage.ListExpenses(ctx, firstUID, 10, 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		for _, e := range got {
			assert.Equal(t, firstUID, e.UserUID)
		}
	})

	t.Run("пагинация и хронологический порядок", func(t *testing.T) {
		got, err := storage.ListExpenses(ctx, firstUID, 2, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "gas", got[0].Category)
		assert.Equal(t, "food", got[1].Category)
	})

	t.Run("пустой список для пользователя без записей", func(t *testing.T) {
		emptyUID := factory.CreateUser(t, "empty", "hash")
		got, err := storage.ListExpenses(ctx, emptyUID, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStorage_ListAllExpenses(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	firstUID := factory.CreateUser(t, "user1", "hash")
	secondUID := factory.CreateUser(t, "user2", "hash")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateExpense(t, firstUID, "10.00", base, "food")
	factory.CreateExpense(t, firstUID, "20.00", base.AddDate(0, 0, 1), "gas")
	factory.CreateExpense(t, secondUID, "99.00", base, "books")

	got, err := storage.ListAllExpenses(context.Background(), firstUID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, firstUID, e.UserUID)
	}
}
