package httpapi

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kesif-backend/internal/domain"
)

func TestGenerateInfluencerExport(t *testing.T) {
	data, err := GenerateInfluencerExport([]domain.Influencer{
		{
			ID:           1,
			Name:         "Ayşe Demir",
			Slug:         "ayse-demir",
			Category:     "moda",
			Specialties:  []string{"moda", "güzellik"},
			SocialCounts: map[string]string{"instagram": "250K"},
			SortOrder:    0,
			CreatedAt:    time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Influencers")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, InfluencerExportHeader, rows[0])
	assert.Equal(t, "Ayşe Demir", rows[1][1])
	assert.Equal(t, "moda, güzellik", rows[1][4])
	assert.Equal(t, "instagram: 250K", rows[1][5])
	assert.Equal(t, "2025-06-01 12:30", rows[1][7])
}

func TestGeneratePageViewExport_Empty(t *testing.T) {
	data, err := GeneratePageViewExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Page Views")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, PageViewExportHeader, rows[0])
}

func TestExportFilename(t *testing.T) {
	name := exportFilename("influencers")
	assert.Regexp(t, `^influencers_\d{8}\.xlsx$`, name)
}
