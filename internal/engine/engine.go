// Package engine orchestrates walking, parsing, rule dispatch, and parallel
// (rule, file) evaluation, producing the violation list the aggregator
// compares against budgets. Its output depends only on file content,
// config, counts, and rule set — never on thread count or scheduling:
// diagnostics are returned sorted by (path, rule), and the set of
// violations is fixed while their final order is imposed by the aggregator.
package engine

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/philjestin/ratchet/internal/counts"
	"github.com/philjestin/ratchet/internal/model"
	"github.com/philjestin/ratchet/internal/parse"
	"github.com/philjestin/ratchet/internal/region"
	"github.com/philjestin/ratchet/internal/rule"
	"github.com/philjestin/ratchet/internal/source"
	"github.com/philjestin/ratchet/internal/workers"
)

// job is one unit of parallelism: a (rule, file) pair known to apply.
type job struct {
	rule *rule.Rule
	file *source.FileEntry
}

// Diagnostic records a non-fatal per-file parse failure surfaced during
// evaluation; it excludes the file from that rule's results
// without counting against any budget and without aborting the run.
type Diagnostic struct {
	Rule model.RuleId
	Path string
	Why  string
}

// Result is the engine's full output for one run.
type Result struct {
	Violations  []model.Violation
	Diagnostics []Diagnostic
}

// Run evaluates every active rule against every file it applies to, in
// parallel over (rule, file) pairs, and attributes each match to a region.
func Run(ctx context.Context, cache *parse.Cache, rules []*rule.Rule, doc counts.Document, files []*source.FileEntry) (Result, error) {
	jobs := buildJobs(rules, files)

	n := workers.Count()
	if n > len(jobs) {
		n = len(jobs)
	}
	if n == 0 {
		return Result{}, nil
	}

	shards := shard(jobs, n)

	type partial struct {
		violations  []model.Violation
		diagnostics []Diagnostic
	}
	partials := make([]partial, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			var p partial
			for _, j := range shard {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				matches, err := j.rule.Evaluate(j.file, cache)
				if err != nil {
					var parseErr *model.ParseFailed
					if errors.As(err, &parseErr) {
						p.diagnostics = append(p.diagnostics, Diagnostic{
							Rule: j.rule.ID,
							Path: j.file.Path,
							Why:  parseErr.Diagnostic,
						})
						continue
					}
					return err
				}
				regions := doc.RegionsFor(j.rule.ID)
				for _, m := range matches {
					v := model.Violation{
						Rule:      j.rule.ID,
						File:      j.file.Path,
						StartLine: m.StartLine,
						StartCol:  m.StartCol,
						EndLine:   m.EndLine,
						EndCol:    m.EndCol,
						Snippet:   m.Snippet,
						Message:   j.rule.Description,
					}
					v.Region = region.Resolve(regions, j.file.Path)
					p.violations = append(p.violations, v)
				}
			}
			partials[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var out Result
	for _, p := range partials {
		out.Violations = append(out.Violations, p.violations...)
		out.Diagnostics = append(out.Diagnostics, p.diagnostics...)
	}
	sort.Slice(out.Diagnostics, func(i, j int) bool {
		a, b := out.Diagnostics[i], out.Diagnostics[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Rule < b.Rule
	})
	return out, nil
}

func buildJobs(rules []*rule.Rule, files []*source.FileEntry) []job {
	jobs := make([]job, 0, len(rules)*len(files)/4+len(files))
	for _, r := range rules {
		for _, f := range files {
			if r.AppliesTo(f) {
				jobs = append(jobs, job{rule: r, file: f})
			}
		}
	}
	return jobs
}

// shard splits jobs into n roughly-even slices by dealing them round-robin
// (job i goes to slice i mod n); the scheduler is free to batch by file or
// by rule, and a static split is simplest since ordering is re-established
// later regardless.
func shard(jobs []job, n int) [][]job {
	if n <= 0 {
		n = 1
	}
	shards := make([][]job, n)
	for i, j := range jobs {
		idx := i % n
		shards[idx] = append(shards[idx], j)
	}
	return shards
}
