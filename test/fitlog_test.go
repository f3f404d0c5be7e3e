package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/backup"
	"github.com/2beens/fitlog/internal/fitlog/entries"
	"github.com/2beens/fitlog/internal/fitlog/reports"
	"github.com/2beens/fitlog/internal/fitlog/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) listTypes(ctx context.Context) []types.WorkoutType {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/types", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var workoutTypes []types.WorkoutType
	require.NoError(s.T(), json.Unmarshal(respBytes, &workoutTypes))
	return workoutTypes
}

func (s *IntegrationTestSuite) newEntryRequest(
	ctx context.Context,
	entry entries.WorkoutEntry,
) entries.AddEntryResponse {
	entryJson, err := json.Marshal(entry)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/entries", serverEndpoint),
		bytes.NewReader(entryJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addResp entries.AddEntryResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &addResp))
	return addResp
}

func (s *IntegrationTestSuite) getMonthlyReport(ctx context.Context, year int, month time.Month) *reports.MonthlyReport {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/reports/monthly?year=%d&month=%d", serverEndpoint, year, int(month)),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var report reports.MonthlyReport
	require.NoError(s.T(), json.Unmarshal(respBytes, &report))
	return &report
}

func (s *IntegrationTestSuite) TestDefaultTypesSeeded() {
	workoutTypes := s.listTypes(context.Background())
	require.Len(s.T(), workoutTypes, 5)

	names := make([]string, 0, len(workoutTypes))
	restDays := 0
	for _, workoutType := range workoutTypes {
		names = append(names, workoutType.Name)
		assert.True(s.T(), workoutType.IsDefault)
		if workoutType.IsRestDay {
			restDays++
		}
	}
	assert.Contains(s.T(), names, "Chest")
	assert.Contains(s.T(), names, "Rest Day")
	assert.Equal(s.T(), 1, restDays)
}

func (s *IntegrationTestSuite) TestAddEntriesAndMonthlyReport() {
	ctx := context.Background()
	workoutTypes := s.listTypes(ctx)
	chest := workoutTypes[0]
	back := workoutTypes[1]

	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	addResp := s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:            juneFirst,
		WorkoutTypeID:   chest.ID,
		DurationMinutes: 45,
		CaloriesBurned:  300,
	})
	assert.False(s.T(), addResp.Conflict)
	assert.NotZero(s.T(), addResp.Entry.ID)

	// second entry on the same day gets the conflict marker but is stored
	addResp = s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          juneFirst,
		WorkoutTypeID: back.ID,
	})
	assert.True(s.T(), addResp.Conflict)

	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: chest.ID,
	})

	report := s.getMonthlyReport(ctx, 2024, time.June)
	assert.Equal(s.T(), 3, report.TotalWorkouts)
	assert.Equal(s.T(), 28, report.TotalRestDays)
	assert.Equal(s.T(), 45, report.TotalDuration)
	assert.Equal(s.T(), 300, report.TotalCalories)

	require.Len(s.T(), report.WorkoutTypeCounts, 2)
	assert.Equal(s.T(), chest.ID, report.WorkoutTypeCounts[0].Type.ID)
	assert.Equal(s.T(), 2, report.WorkoutTypeCounts[0].Count)

	require.Len(s.T(), report.DailyCounts, 2)
	assert.Equal(s.T(), reports.DailyCount{Day: 1, Count: 2}, report.DailyCounts[0])
	assert.Equal(s.T(), reports.DailyCount{Day: 15, Count: 1}, report.DailyCounts[1])
}

func (s *IntegrationTestSuite) TestReportCacheInvalidatedOnNewEntry() {
	ctx := context.Background()
	workoutTypes := s.listTypes(ctx)

	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: workoutTypes[0].ID,
	})

	report := s.getMonthlyReport(ctx, 2024, time.July)
	require.Equal(s.T(), 1, report.TotalWorkouts)

	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: workoutTypes[0].ID,
	})

	// the cached july report must be flushed by the new entry
	require.Eventually(s.T(), func() bool {
		return s.getMonthlyReport(ctx, 2024, time.July).TotalWorkouts == 2
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *IntegrationTestSuite) TestExportMonthlyXLSX() {
	ctx := context.Background()
	workoutTypes := s.listTypes(ctx)

	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: workoutTypes[0].ID,
	})

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/export/monthly/xlsx?year=2024&month=8", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	assert.Equal(s.T(),
		`attachment; filename="workout-report-2024-08.xlsx"`,
		resp.Header.Get("Content-Disposition"),
	)

	content, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), content)
}

func (s *IntegrationTestSuite) TestExportNothingToExport() {
	req, err := http.NewRequestWithContext(
		context.Background(),
		"GET", fmt.Sprintf("%s/export/monthly/pdf?year=2030&month=1", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestRepoAggregationQueries() {
	ctx := context.Background()
	workoutTypes := s.listTypes(ctx)
	chest := workoutTypes[0]
	back := workoutTypes[1]

	novFirst := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	s.newEntryRequest(ctx, entries.WorkoutEntry{Date: novFirst, WorkoutTypeID: chest.ID})
	s.newEntryRequest(ctx, entries.WorkoutEntry{Date: novFirst, WorkoutTypeID: back.ID})
	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: chest.ID,
	})

	repo := entries.NewRepo(s.db, nil)
	from := novFirst
	to := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)

	typeCounts, err := repo.TypeCountsBetween(ctx, from, to)
	require.NoError(s.T(), err)
	require.Len(s.T(), typeCounts, 2)
	assert.Equal(s.T(), chest.ID, typeCounts[0].WorkoutTypeID)
	assert.Equal(s.T(), 2, typeCounts[0].Count)

	dailyCounts, err := repo.DailyCountsBetween(ctx, from, to)
	require.NoError(s.T(), err)
	require.Len(s.T(), dailyCounts, 2)
	assert.Equal(s.T(), 2, dailyCounts[0].Count)
	assert.Equal(s.T(), 1, dailyCounts[1].Count)

	count, err := repo.CountOnDate(ctx, novFirst)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, count)
}

func (s *IntegrationTestSuite) TestBackupDump() {
	ctx := context.Background()
	workoutTypes := s.listTypes(ctx)

	s.newEntryRequest(ctx, entries.WorkoutEntry{
		Date:          time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		WorkoutTypeID: workoutTypes[0].ID,
		Note:          "to be dumped",
	})

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/backup", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var doc backup.Document
	require.NoError(s.T(), json.Unmarshal(respBytes, &doc))
	assert.Equal(s.T(), backup.DocumentVersion, doc.Version)
	assert.Len(s.T(), doc.WorkoutTypes, 5)
	require.Len(s.T(), doc.WorkoutEntries, 1)
	assert.Equal(s.T(), "to be dumped", doc.WorkoutEntries[0].Note)
}
