package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

func TestWriteOwnerBookings(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{
			ID:     7,
			Start:  start,
			End:    start.Add(48 * time.Hour),
			Status: models.StatusApproved,
			Booker: models.UserRef{ID: 2, Name: "Booker"},
			Item:   models.BookedItem{ID: 3, Name: "drill"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOwnerBookings(&buf, bookings))
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	item, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "drill", item)

	status, err := f.GetCellValue(sheetName, "F2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, status)
}

func TestWriteOwnerBookings_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOwnerBookings(&buf, nil))
	assert.NotZero(t, buf.Len())
}
