package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/localscope/localscope-cli/internal/analysis"
	"github.com/localscope/localscope-cli/internal/export"
)

var (
	batchOut   string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.csv|input.xlsx>",
	Short: "Score every address in a CSV or XLSX file and write an XLSX report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := initAnalyzer("batch")
		if err != nil {
			return err
		}

		reqs, err := export.ReadRequestsFile(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "read batch input")
		}

		outcomes, err := processBatch(ctx, reqs, batchLimit, cfg.Batch.Concurrency, a.Analyze)
		if err != nil {
			return err
		}

		wb, err := export.NewWorkbook()
		if err != nil {
			return err
		}
		for _, o := range outcomes {
			wb.Add(o)
		}
		if err := wb.Save(batchOut); err != nil {
			return err
		}
		zap.L().Info("batch report written", zap.String("path", batchOut))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "localscope-report.xlsx", "output XLSX path")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to process (0 for all)")
	rootCmd.AddCommand(batchCmd)
}

// analyzeFunc is the callback signature for analyzing one request.
type analyzeFunc func(ctx context.Context, req analysis.Request) (*analysis.Report, error)

// processBatch applies limit, then analyzes requests concurrently. Outcomes
// keep input order; a failed row never aborts the batch.
func processBatch(ctx context.Context, reqs []analysis.Request, limit, concurrency int, analyze analyzeFunc) ([]export.Outcome, error) {
	if len(reqs) == 0 {
		zap.L().Info("no rows to analyze")
		return nil, nil
	}

	if limit > 0 && len(reqs) > limit {
		reqs = reqs[:limit]
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("rows", len(reqs)),
		zap.Int("concurrency", concurrency),
	)

	outcomes := make([]export.Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			log := zap.L().With(zap.Int("row", i+1), zap.String("address", req.Address))

			report, err := analyze(gctx, req)
			outcomes[i] = export.Outcome{Request: req, Report: report, Err: err}
			if err != nil {
				failed.Add(1)
				log.Warn("analysis failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("analysis complete",
				zap.Int("score", report.Result.OverallScore),
				zap.String("neighborhood", report.Neighborhood),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "batch interrupted")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return outcomes, nil
}
