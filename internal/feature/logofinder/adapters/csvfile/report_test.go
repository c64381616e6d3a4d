package csvfile

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo_finder/internal/feature/logofinder/domain/entity"
)

// readCSV は書き出されたレポートを読み戻すヘルパー関数です。
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestReportWriter_Save(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewReportWriter(path)
	timestamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	err := writer.Save(ctx, []entity.SiteResult{
		{
			URL:             "example.com",
			WebsiteName:     "Example",
			LogoFound:       true,
			LogoURL:         "https://example.com/logo.png",
			LogoConfidence:  92,
			LogoReasoning:   "clear brand mark",
			LogoType:        entity.LogoTypeCombination,
			HasBusinessName: true,
			LogoQuality:     entity.QualityHigh,
			CandidatesFound: 3,
			Timestamp:       timestamp,
		},
		{
			URL:         "broken.example",
			WebsiteName: "Broken",
			Error:       "navigation timeout",
			Timestamp:   timestamp,
		},
	})

	require.NoError(t, err)
	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"url", "website_name", "logo_found", "logo_url", "logo_confidence",
		"logo_reasoning", "logo_type", "has_business_name", "logo_quality",
		"candidates_found", "error", "timestamp",
	}, records[0])
	assert.Equal(t, []string{
		"example.com", "Example", "true", "https://example.com/logo.png", "92",
		"clear brand mark", "combination", "true", "high",
		"3", "", "2026-08-30T12:00:00Z",
	}, records[1])
	assert.Equal(t, []string{
		"broken.example", "Broken", "false", "", "0",
		"", "", "false", "",
		"0", "navigation timeout", "2026-08-30T12:00:00Z",
	}, records[2])
}

func TestReportWriter_Save_OverwritesPreviousCheckpoint(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewReportWriter(path)

	require.NoError(t, writer.Save(ctx, []entity.SiteResult{
		{URL: "a.example"},
	}))
	require.NoError(t, writer.Save(ctx, []entity.SiteResult{
		{URL: "a.example"},
		{URL: "b.example"},
	}))

	// 追記ではなく、累積結果での完全な上書き
	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, "a.example", records[1][0])
	assert.Equal(t, "b.example", records[2][0])
}

func TestReportWriter_Save_EmptyResults(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewReportWriter(path)

	require.NoError(t, writer.Save(ctx, nil))

	// ヘッダーのみのファイルになる
	records := readCSV(t, path)
	require.Len(t, records, 1)
}

func TestReportWriter_Save_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writer := NewReportWriter(filepath.Join(dir, "results.csv"))

	require.NoError(t, writer.Save(ctx, []entity.SiteResult{{URL: "a.example"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "results.csv", entries[0].Name())
}
