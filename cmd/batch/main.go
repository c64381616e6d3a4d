package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"logo_finder/internal/app/di"
	"logo_finder/internal/feature/logofinder/adapters"
	"logo_finder/internal/feature/logofinder/adapters/csvfile"
	"logo_finder/internal/feature/logofinder/domain/entity"
	"logo_finder/internal/feature/logofinder/usecase"
	"logo_finder/internal/platform/db"
	infraredis "logo_finder/internal/platform/redis"
	"logo_finder/internal/shared/ratelimiter"
)

var (
	csvPath         string
	siteURL         string
	siteName        string
	outputPath      string
	checkpointEvery int
)

func main() {
	root := &cobra.Command{
		Use:   "batch",
		Short: "Find and validate website logos",
		Long:  "Scans rendered web pages for logo candidates and validates them against a vision oracle, one site at a time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && siteURL == "" {
				return fmt.Errorf("either --csv or --url is required")
			}
			return run(cmd.Context())
		},
	}

	root.Flags().StringVarP(&csvPath, "csv", "c", "", "CSV file containing websites to process")
	root.Flags().StringVarP(&siteURL, "url", "u", "", "single URL to process")
	root.Flags().StringVarP(&siteName, "name", "n", "", "website/business name (when using --url)")
	root.Flags().StringVarP(&outputPath, "output", "o", "", "output CSV file path")
	root.Flags().IntVar(&checkpointEvery, "checkpoint-every", 0, "persist partial results every N sites (default 10)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := di.LoadConfig()

	// Redis（判定キャッシュ。無くても動作する）
	rdb, err := infraredis.NewRedisClient()
	if err != nil {
		log.Println("[WARN] Redis unavailable. Running without verdict cache.")
		rdb = nil
	}

	siteUC, renderer, err := di.NewSiteUsecase(ctx, cfg, rdb)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer renderer.Close()

	if siteURL != "" {
		result := siteUC.ProcessSite(ctx, entity.Site{URL: siteURL, Name: siteName})
		printResult(result)
		return nil
	}

	sites, err := csvfile.LoadSites(csvPath)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = strings.TrimSuffix(csvPath, ".csv") + "_logos.csv"
	}

	// DBが構成されていれば結果ストアにも永続化する
	var store usecase.ResultRepository
	if os.Getenv("DB_HOST") != "" {
		store = adapters.NewSiteResultRepository(db.OpenDB())
	}

	batch := usecase.NewBatchUsecase(
		siteUC,
		csvfile.NewReportWriter(outputPath),
		store,
		ratelimiter.NewFixedDelay(cfg.SiteDelay),
		cfg,
	)

	results, err := batch.Run(ctx, sites, checkpointEvery)
	if err != nil {
		return err
	}

	printSummary(usecase.Summarize(results))
	fmt.Printf("results saved to %s\n", outputPath)
	return nil
}

func printResult(r entity.SiteResult) {
	fmt.Printf("url:              %s\n", r.URL)
	fmt.Printf("logo_found:       %t\n", r.LogoFound)
	fmt.Printf("logo_url:         %s\n", r.LogoURL)
	fmt.Printf("logo_confidence:  %d\n", r.LogoConfidence)
	fmt.Printf("logo_reasoning:   %s\n", r.LogoReasoning)
	fmt.Printf("logo_type:        %s\n", r.LogoType)
	fmt.Printf("logo_quality:     %s\n", r.LogoQuality)
	fmt.Printf("candidates_found: %d\n", r.CandidatesFound)
	if r.Error != "" {
		fmt.Printf("error:            %s\n", r.Error)
	}
}

func printSummary(s entity.RunSummary) {
	fmt.Println("==================================================")
	fmt.Printf("total websites processed: %d\n", s.Total)
	fmt.Printf("logos found:              %d\n", s.Found)
	fmt.Printf("high confidence (90%%+):   %d\n", s.HighConfidence)
	fmt.Printf("with business name:       %d\n", s.WithBusinessName)
	for _, q := range []entity.Quality{entity.QualityHigh, entity.QualityMedium, entity.QualityLow} {
		if n := s.QualityCounts[q]; n > 0 {
			fmt.Printf("quality %-8s          %d\n", string(q)+":", n)
		}
	}
}
