package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	summaryFilter  SummaryFilter
	activityFilter QuoteActivityFilter
}

func (f *fakeRepo) GetSummary(ctx context.Context, filter SummaryFilter) (*Summary, error) {
	f.summaryFilter = filter
	return &Summary{FromDate: *filter.FromDate, ToDate: *filter.ToDate}, nil
}

func (f *fakeRepo) GetQuoteActivity(ctx context.Context, filter QuoteActivityFilter) (*QuoteActivity, error) {
	f.activityFilter = filter
	return &QuoteActivity{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func TestGetSummaryDefaultsToLast30Days(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	before := time.Now()
	_, err := svc.GetSummary(context.Background(), SummaryFilter{})
	require.NoError(t, err)

	require.NotNil(t, repo.summaryFilter.FromDate)
	require.NotNil(t, repo.summaryFilter.ToDate)
	assert.WithinDuration(t, before, *repo.summaryFilter.ToDate, time.Second)
	assert.WithinDuration(t, repo.summaryFilter.ToDate.AddDate(0, 0, -30),
		*repo.summaryFilter.FromDate, time.Second)
}

func TestGetSummaryRejectsInvertedPeriod(t *testing.T) {
	svc := NewService(&fakeRepo{})

	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, 7)
	_, err := svc.GetSummary(context.Background(), SummaryFilter{FromDate: &from, ToDate: &to})
	require.Error(t, err)
}

func TestGetQuoteActivityPaginationDefaults(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero gets default", limit: 0, wantLimit: 50},
		{name: "negative gets default", limit: -10, wantLimit: 50},
		{name: "within bounds kept", limit: 200, wantLimit: 200},
		{name: "capped at 500", limit: 5000, wantLimit: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo)

			_, err := svc.GetQuoteActivity(context.Background(), QuoteActivityFilter{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.activityFilter.Limit)
		})
	}
}

func TestGetQuoteActivitySortDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.GetQuoteActivity(context.Background(), QuoteActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, "sent_at", repo.activityFilter.SortBy)
	assert.Equal(t, "desc", repo.activityFilter.SortOrder)

	_, err = svc.GetQuoteActivity(context.Background(), QuoteActivityFilter{
		SortBy:    "total_amount",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, "total_amount", repo.activityFilter.SortBy)
	assert.Equal(t, "asc", repo.activityFilter.SortOrder)
}
