// Package pipeline orchestrates the batch: discovery, per-file planning,
// the bounded worker pool, finalization, and summary reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/boxkutter/media-fixer/internal/config"
	"github.com/boxkutter/media-fixer/internal/display"
	"github.com/boxkutter/media-fixer/internal/ffmpeg"
	"github.com/boxkutter/media-fixer/internal/hwaccel"
	"github.com/boxkutter/media-fixer/internal/logging"
	"github.com/boxkutter/media-fixer/internal/planner"
	"github.com/boxkutter/media-fixer/internal/probe"
)

// Run is the top-level batch entry point. It discovers files, compiles a
// job for every file that needs one, and runs the jobs across the worker
// pool. A discovery failure or an empty match set is an error; the stats
// drive the rest of the exit decision.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg)
	if err != nil {
		return stats, fmt.Errorf("file discovery: %w", err)
	}
	if len(files) == 0 {
		return stats, errors.New("no media files found")
	}
	stats.Total = len(files)

	if cfg.ProbeOnly {
		probeReport(ctx, files, log, &stats)
		return stats, nil
	}

	target := planner.NewTarget(cfg)
	// A dry run must not touch the encoder, and the hardware self-test is
	// itself a tiny encode, so dry runs plan against the software path.
	sel := hwaccel.NewSelector(!cfg.UseHardware || cfg.DryRun, log)
	col := NewCollector()

	jobs := buildJobs(ctx, cfg, target, sel, col, files, log, &stats)
	stats.Attempted = len(jobs)

	if cfg.DryRun {
		log.Info("dry run: %d of %d files would be converted", len(jobs), stats.Total)
		flushErrors(cfg, log, col)
		return stats, nil
	}
	if len(jobs) == 0 && stats.Failed == 0 {
		log.Info("no files need converting")
		return stats, nil
	}

	if len(jobs) > 0 {
		log.Info("converting %d of %d files with %d workers", len(jobs), stats.Total, cfg.Workers)
		runPool(ctx, cfg, log, jobs, col)
	}

	stats.Converted = col.Successes()
	stats.Failed += stats.Attempted - stats.Converted
	stats.TotalInputBytes, stats.TotalOutputBytes = col.Bytes()

	flushErrors(cfg, log, col)
	logSummary(log, &stats)
	return stats, nil
}

// flushErrors writes the collected errors out to the error log. Probe and
// planning failures land in the collector too, so this runs even when the
// worker pool never did.
func flushErrors(cfg *config.Config, log *logging.Logger, col *Collector) {
	if len(col.Errors()) == 0 {
		return
	}
	if err := col.WriteLog(cfg.ErrorLog); err != nil {
		log.Error("cannot write error log: %v", err)
		return
	}
	log.Error("errors logged to %s", cfg.ErrorLog)
}

// buildJobs probes each file and compiles a job for those that need work.
// Probe failures are counted and collected; clean files are skipped.
func buildJobs(
	ctx context.Context,
	cfg *config.Config,
	target planner.Target,
	sel *hwaccel.Selector,
	col *Collector,
	files []string,
	log *logging.Logger,
	stats *RunStats,
) []*Job {
	var jobs []*Job
	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("interrupted")
			break
		}

		catalog, err := probe.Probe(ctx, path)
		if err == nil && len(catalog) == 0 {
			// A file with no streams cannot be converted; skipping it
			// silently would hide a broken source.
			err = errors.New("no streams found")
		}
		if err != nil {
			log.Error("cannot probe %s: %v", path, err)
			col.Fail(path, err)
			stats.Failed++
			continue
		}

		d := planner.Derive(target, catalog)
		if !planner.NeedsTranscode(d, catalog, strings.ToLower(filepath.Ext(path))) {
			log.Debug("no work needed: %s", path)
			stats.Skipped++
			continue
		}

		job, err := compileJob(ctx, cfg, d, catalog, sel, path)
		if err != nil {
			log.Error("cannot plan %s: %v", path, err)
			col.Fail(path, err)
			stats.Failed++
			continue
		}
		if job.Warning != "" {
			log.Warn("%s: %s", filepath.Base(path), job.Warning)
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// runPool feeds jobs to a fixed set of workers and waits for completion.
// A cancelled context stops feeding; jobs already picked up run to their
// own cancellation via the per-job context.
func runPool(ctx context.Context, cfg *config.Config, log *logging.Logger, jobs []*Job, col *Collector) {
	bar := display.NewProgress(len(jobs), cfg.Quiet)
	defer bar.Finish()

	ch := make(chan *Job)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range ch {
				runJob(ctx, cfg, log, job, col)
				bar.Step()
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case ch <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(ch)
	wg.Wait()
}

// runJob executes one job end to end: encode to the temp path, then
// finalize. A failed encode leaves the temp file in place; the marker
// prefix keeps discovery from ever picking it up as a source.
func runJob(ctx context.Context, cfg *config.Config, log *logging.Logger, job *Job, col *Collector) {
	base := filepath.Base(job.Source)

	if err := os.MkdirAll(filepath.Dir(job.TempDest), 0o755); err != nil {
		log.Error("cannot create output directory for %s: %v", base, err)
		col.Fail(job.Source, err)
		return
	}

	var inSize int64
	if fi, err := os.Stat(job.Source); err == nil {
		inSize = fi.Size()
	}

	jctx := ctx
	if cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		jctx, cancel = context.WithTimeout(ctx, cfg.JobTimeout)
		defer cancel()
	}

	log.Debug("running: %s", strings.Join(job.Args, " "))
	res := ffmpeg.Execute(jctx, job.Args, cfg.Verbose)
	if res.Err != nil {
		log.Error("convert failed: %s: %v", base, res.Err)
		col.FailOutput(job.Source, res.Err, res.Stderr)
		return
	}

	clean, err := Finalize(job, cfg.NoReplace)
	if err != nil {
		log.Error("finalize failed: %s: %v", base, err)
		col.Fail(job.Source, err)
		return
	}

	var outSize int64
	if fi, err := os.Stat(clean); err == nil {
		outSize = fi.Size()
	}
	col.Success(inSize, outSize)
	log.Success("converted: %s -> %s", base, filepath.Base(clean))
}

// probeReport prints each file's stream catalog and does nothing else.
func probeReport(ctx context.Context, files []string, log *logging.Logger, stats *RunStats) {
	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn("interrupted")
			return
		}
		catalog, err := probe.Probe(ctx, path)
		if err != nil {
			log.Error("cannot probe %s: %v", path, err)
			stats.Failed++
			continue
		}
		fmt.Println(display.CatalogTable(path, catalog))
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	fmt.Println(display.SummaryTable(stats.Converted, stats.Skipped, stats.Failed, stats.TotalOutputBytes-stats.TotalInputBytes))
}
