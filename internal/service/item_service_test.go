package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/models"
)

func TestItemService_AddItem(t *testing.T) {
	env := setupServices(t)
	owner := env.addUser(t, "Owner", "owner@example.com")

	item := env.addItem(t, owner.ID, "drill")
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)
}

func TestItemService_AddItem_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")

	tests := []struct {
		name string
		item models.Item
		msg  string
	}{
		{"blank name", models.Item{Name: " ", Description: "d", Available: true}, "item name is blank"},
		{"blank description", models.Item{Name: "drill", Description: "", Available: true}, "item description is blank"},
		{"unavailable", models.Item{Name: "drill", Description: "d", Available: false}, "item must be available at creation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.items.AddItem(ctx, owner.ID, &tt.item)
			require.Error(t, err)
			assert.ErrorIs(t, err, database.ErrValidation)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestItemService_AddItem_UnknownOwner(t *testing.T) {
	env := setupServices(t)

	_, err := env.items.AddItem(context.Background(), 404, &models.Item{Name: "drill", Description: "d", Available: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestItemService_AddItem_UnknownRequest(t *testing.T) {
	env := setupServices(t)
	owner := env.addUser(t, "Owner", "owner@example.com")

	_, err := env.items.AddItem(context.Background(), owner.ID, &models.Item{
		Name: "drill", Description: "d", Available: true, RequestID: 404,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestItemService_UpdateItem(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")
	item := env.addItem(t, owner.ID, "drill")

	updated, err := env.items.UpdateItem(ctx, owner.ID, item.ID, models.ItemPatch{
		Description: strPtr("updated description"),
		Available:   boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "drill", updated.Name)
	assert.Equal(t, "updated description", updated.Description)
	assert.False(t, updated.Available)
}

func TestItemService_UpdateItem_ForeignItem(t *testing.T) {
	env := setupServices(t)
	owner := env.addUser(t, "Owner", "owner@example.com")
	other := env.addUser(t, "Other", "other@example.com")
	item := env.addItem(t, owner.ID, "drill")

	_, err := env.items.UpdateItem(context.Background(), other.ID, item.ID, models.ItemPatch{Name: strPtr("stolen")})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Equal(t, "information about this user's item absent", err.Error())
}

func TestItemService_GetItem_OwnerSeesBookings(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")
	booker := env.addUser(t, "Booker", "booker@example.com")
	item := env.addItem(t, owner.ID, "drill")

	start := time.Now().Add(24 * time.Hour)
	booking := env.book(t, booker.ID, item.ID, start, start.Add(24*time.Hour))
	_, err := env.bookings.SetStatus(ctx, owner.ID, booking.ID, true)
	require.NoError(t, err)

	ownerView, err := env.items.GetItem(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, ownerView.NextBooking)
	assert.Equal(t, booking.ID, ownerView.NextBooking.ID)

	bookerView, err := env.items.GetItem(ctx, booker.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, bookerView.NextBooking)
	assert.Nil(t, bookerView.LastBooking)
	assert.NotNil(t, bookerView.Comments)
}

func TestItemService_GetUserItems(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")
	env.addItem(t, owner.ID, "drill")
	env.addItem(t, owner.ID, "saw")

	items, err := env.items.GetUserItems(ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItemService_Search_BlankText(t *testing.T) {
	env := setupServices(t)

	items, err := env.items.Search(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_Search_NoMatchesNotNil(t *testing.T) {
	env := setupServices(t)

	items, err := env.items.Search(context.Background(), "unicorn", nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_AddComment_RequiresPastRental(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")
	author := env.addUser(t, "Author", "author@example.com")
	item := env.addItem(t, owner.ID, "drill")

	_, err := env.items.AddComment(ctx, author.ID, item.ID, "never touched it")
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrValidation)
}

func TestItemService_AddComment(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	owner := env.addUser(t, "Owner", "owner@example.com")
	author := env.addUser(t, "Author", "author@example.com")
	item := env.addItem(t, owner.ID, "drill")

	// A started booking entitles the booker to comment.
	booking := &models.Booking{
		Start:  time.Now().Add(-48 * time.Hour),
		End:    time.Now().Add(-24 * time.Hour),
		Status: models.StatusApproved,
		Booker: models.UserRef{ID: author.ID},
		Item:   models.BookedItem{ID: item.ID},
	}
	require.NoError(t, env.db.CreateBooking(ctx, booking))

	comment, err := env.items.AddComment(ctx, author.ID, item.ID, "worked well")
	require.NoError(t, err)
	assert.Equal(t, "Author", comment.AuthorName)
	assert.Equal(t, "worked well", comment.Text)
}

func TestItemService_AddComment_BlankText(t *testing.T) {
	env := setupServices(t)

	_, err := env.items.AddComment(context.Background(), 1, 1, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrValidation)
	assert.Equal(t, "comment text is blank", err.Error())
}
