package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

// reportColumns はチェックポイントと最終レポートの列の並びです。
var reportColumns = []string{
	"url", "website_name", "logo_found", "logo_url", "logo_confidence",
	"logo_reasoning", "logo_type", "has_business_name", "logo_quality",
	"candidates_found", "error", "timestamp",
}

// ReportWriter は累積結果をCSVファイルに書き出すResultWriter実装です。
// 呼び出しごとにファイル全体を上書きし、書き込みは一時ファイルへの
// 書き出しとリネームでアトミックに行われます。
type ReportWriter struct {
	path string
}

// ReportWriterがResultWriterを実装していることをコンパイル時に検証します。
var _ usecase.ResultWriter = (*ReportWriter)(nil)

// NewReportWriter は指定されたパスに書き込むReportWriterを生成します。
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Save は結果リスト全体をCSVとして書き出します。
// クラッシュ時に部分的に書かれたチェックポイントが残らないよう、
// 同一ディレクトリの一時ファイルに書いてからリネームします。
func (w *ReportWriter) Save(_ context.Context, results []entity.SiteResult) error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // リネーム成功後は存在しない

	writer := csv.NewWriter(tmp)
	if err := writer.Write(reportColumns); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(toRecord(r)); err != nil {
			tmp.Close() //nolint:errcheck
			return fmt.Errorf("csv: write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("csv: replace %s: %w", w.path, err)
	}
	return nil
}

// toRecord はSiteResultをレポートの1行に変換します。
func toRecord(r entity.SiteResult) []string {
	return []string{
		r.URL,
		r.WebsiteName,
		strconv.FormatBool(r.LogoFound),
		r.LogoURL,
		strconv.Itoa(r.LogoConfidence),
		r.LogoReasoning,
		string(r.LogoType),
		strconv.FormatBool(r.HasBusinessName),
		string(r.LogoQuality),
		strconv.Itoa(r.CandidatesFound),
		r.Error,
		r.Timestamp.Format(time.RFC3339),
	}
}
