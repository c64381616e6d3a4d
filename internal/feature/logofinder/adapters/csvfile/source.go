// Package csvfile はサイトリストの読み込みと結果チェックポイントの
// CSV入出力を提供します。
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"logo_finder/internal/feature/logofinder/domain/entity"
)

// urlColumns / nameColumns は入力CSVで認識されるヘッダー名です。
var (
	urlColumns  = []string{"url", "website", "website_url", "site"}
	nameColumns = []string{"name", "restaurant_name", "business_name", "company_name", "title"}
)

// LoadSites はCSVファイルからサイトリストを読み込みます。
// 先頭行をヘッダーとして扱い、URL列と事業者名列を柔軟に検出します。
// URL列が見つからない場合はエラーになります。名前列は任意です。
func LoadSites(path string) ([]entity.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	urlIdx := findColumn(records[0], urlColumns)
	if urlIdx < 0 {
		return nil, fmt.Errorf("csv: %s has no URL column (expected one of %v)", path, urlColumns)
	}
	nameIdx := findColumn(records[0], nameColumns)

	sites := make([]entity.Site, 0, len(records)-1)
	for _, record := range records[1:] {
		if urlIdx >= len(record) {
			continue
		}
		url := strings.TrimSpace(record[urlIdx])
		if url == "" {
			continue
		}
		site := entity.Site{URL: url}
		if nameIdx >= 0 && nameIdx < len(record) {
			site.Name = strings.TrimSpace(record[nameIdx])
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// findColumn はヘッダー行から候補名のいずれかに一致する列の位置を返します。
func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, c := range candidates {
			if name == c {
				return i
			}
		}
	}
	return -1
}
