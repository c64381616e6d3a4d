package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
)

type siteResultGorm struct {
	db *gorm.DB
}

var _ usecase.ResultRepository = (*siteResultGorm)(nil)

// NewSiteResultRepository はgormベースのResultRepositoryを生成します。
func NewSiteResultRepository(db *gorm.DB) *siteResultGorm {
	return &siteResultGorm{db: db}
}

// SiteResultModel はsite_resultsテーブルの行を表します。
type SiteResultModel struct {
	ID              uint   `gorm:"primaryKey"`
	URL             string `gorm:"size:512;not null;uniqueIndex:site_result_url"`
	WebsiteName     string `gorm:"size:255"`
	LogoFound       bool   `gorm:"not null;default:false"`
	LogoURL         string `gorm:"size:1024"`
	LogoConfidence  int    `gorm:"not null;default:0"`
	LogoReasoning   string `gorm:"type:text"`
	LogoType        string `gorm:"size:32"`
	HasBusinessName bool   `gorm:"not null;default:false"`
	LogoQuality     string `gorm:"size:16"`
	CandidatesFound int    `gorm:"not null;default:0"`
	Error           string `gorm:"type:text"`
	Timestamp       time.Time
}

func (SiteResultModel) TableName() string {
	return "site_results"
}

func toModel(e entity.SiteResult) SiteResultModel {
	return SiteResultModel{
		URL:             e.URL,
		WebsiteName:     e.WebsiteName,
		LogoFound:       e.LogoFound,
		LogoURL:         e.LogoURL,
		LogoConfidence:  e.LogoConfidence,
		LogoReasoning:   e.LogoReasoning,
		LogoType:        string(e.LogoType),
		HasBusinessName: e.HasBusinessName,
		LogoQuality:     string(e.LogoQuality),
		CandidatesFound: e.CandidatesFound,
		Error:           e.Error,
		Timestamp:       e.Timestamp,
	}
}

func toEntity(m SiteResultModel) entity.SiteResult {
	return entity.SiteResult{
		URL:             m.URL,
		WebsiteName:     m.WebsiteName,
		LogoFound:       m.LogoFound,
		LogoURL:         m.LogoURL,
		LogoConfidence:  m.LogoConfidence,
		LogoReasoning:   m.LogoReasoning,
		LogoType:        entity.LogoType(m.LogoType),
		HasBusinessName: m.HasBusinessName,
		LogoQuality:     entity.Quality(m.LogoQuality),
		CandidatesFound: m.CandidatesFound,
		Error:           m.Error,
		Timestamp:       m.Timestamp,
	}
}

// UpsertBatch は結果をURLをキーに一括で挿入または更新します。
func (r *siteResultGorm) UpsertBatch(ctx context.Context, results []entity.SiteResult) error {
	if len(results) == 0 {
		return nil
	}
	ms := make([]SiteResultModel, 0, len(results))
	for _, e := range results {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"website_name", "logo_found", "logo_url", "logo_confidence",
			"logo_reasoning", "logo_type", "has_business_name", "logo_quality",
			"candidates_found", "error", "timestamp",
		}),
	}).Create(&ms).Error
}

// List は保存されている全結果をタイムスタンプ降順で返します。
func (r *siteResultGorm) List(ctx context.Context) ([]entity.SiteResult, error) {
	var rows []SiteResultModel
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.SiteResult, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
