package calcwkr

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/pkg/async"
	"exusiai.dev/gazeseq/internal/repo"
	"exusiai.dev/gazeseq/internal/service"
)

type WorkerDeps struct {
	fx.In

	AnalysisService *service.Analysis
	DatasetRepo     *repo.Dataset
}

// Worker runs the analysis for every dataset of the profile, one at a time.
type Worker struct {
	// count counts datasets worker has completed so far
	count int

	// sep describes the separation time in-between different datasets
	sep time.Duration

	// timeout bounds a single dataset
	timeout time.Duration

	// deps
	WorkerDeps
}

type DatasetResult struct {
	Dataset  string
	Duration time.Duration
	Result   *service.ExecuteResult
	Err      error
}

func New(conf *appconfig.Config, deps WorkerDeps) *Worker {
	return &Worker{
		sep:        conf.WorkerSeparation,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}
}

// Run analyzes the named datasets, or all of them when names is empty. A failing
// dataset does not stop the batch; all failures are returned together.
func (w *Worker) Run(ctx context.Context, names []string) ([]*DatasetResult, error) {
	datasets, err := w.DatasetRepo.GetDatasets(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		for _, name := range names {
			if !lo.ContainsBy(datasets, func(d *model.Dataset) bool { return d.Name == name }) {
				return nil, errors.Wrap(repo.ErrDatasetNotFound, name)
			}
		}
		datasets = lo.Filter(datasets, func(d *model.Dataset, _ int) bool {
			return lo.Contains(names, d.Name)
		})
	}

	log.Info().
		Int("datasets", len(datasets)).
		Msg("worker batch started")

	var (
		results []*DatasetResult
		errs    async.Errors
	)
	for i, dataset := range datasets {
		if i > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(w.sep):
			}
		}

		log.Info().Str("dataset", dataset.Name).Msg("worker calculating")
		r := &DatasetResult{Dataset: dataset.Name}
		r.Duration, r.Err = observeCalcDuration(dataset.Name, func() error {
			ctx, cancel := context.WithTimeout(ctx, w.timeout)
			defer cancel()

			var err error
			r.Result, err = w.AnalysisService.Execute(ctx, dataset)
			return err
		})
		results = append(results, r)

		if r.Err != nil {
			log.Error().Err(r.Err).Str("dataset", dataset.Name).Msg("worker failed to calculate dataset")
			errs.E = append(errs.E, errors.Wrap(r.Err, dataset.Name))
			continue
		}
		w.count++
		log.Debug().Str("dataset", dataset.Name).Dur("duration", r.Duration).Msg("worker finished")
	}

	log.Info().Int("count", w.count).Int("failed", len(errs.E)).Msg("worker batch finished")

	return results, errs.Wrapped()
}

func (w *Worker) Count() int {
	return w.count
}
