// Package walk discovers candidate source files under a repo root, honoring
// include/exclude globs and gitignore-style VCS-ignore semantics, and reads
// them into FileEntry values. The walk itself is sequential (so ignore
// files are discovered top-down in the right order); file content reads are
// fanned out over a worker pool fed by a closed job channel.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/philjestin/ratchet/internal/globmatch"
	"github.com/philjestin/ratchet/internal/source"
	"github.com/philjestin/ratchet/internal/workers"
)

// Options configures a walk.
type Options struct {
	Include []string
	Exclude []string
}

// candidate is a path discovered by the sequential walk, queued for a
// worker to read.
type candidate struct {
	relPath string
	absPath string
}

// Walk discovers files under repoRoot (honoring scanRoots, a subset of
// paths to restrict the walk to — defaulting to [repoRoot] — plus
// Options.Include/Exclude and VCS-ignore semantics) and returns them as
// FileEntry values sorted by repo-relative path, so downstream aggregation
// is deterministic even though the reads themselves run in parallel.
func Walk(ctx context.Context, repoRoot string, scanRoots []string, opts Options) ([]*source.FileEntry, error) {
	if len(scanRoots) == 0 {
		scanRoots = []string{repoRoot}
	}

	candidates, err := discover(repoRoot, scanRoots, opts)
	if err != nil {
		return nil, err
	}

	entries, err := readAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// discover performs the sequential, ignore-aware directory walk.
func discover(repoRoot string, scanRoots []string, opts Options) ([]candidate, error) {
	ignore := newIgnoreMatcher()
	ignore.loadGlobal()

	var out []candidate
	seen := map[string]struct{}{}

	for _, root := range scanRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			rel, relErr := filepath.Rel(repoRoot, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				if rel != "." && ignore.match(rel, true) {
					return filepath.SkipDir
				}
				if giPath := filepath.Join(path, ".gitignore"); fileExists(giPath) {
					scope := rel
					if scope == "." {
						scope = ""
					}
					ignore.loadFile(giPath, scope)
				}
				return nil
			}

			if ignore.match(rel, false) {
				return nil
			}
			if len(opts.Include) > 0 && !globmatch.Any(opts.Include, rel) {
				return nil
			}
			if len(opts.Exclude) > 0 && globmatch.Any(opts.Exclude, rel) {
				return nil
			}
			if _, dup := seen[rel]; dup {
				return nil
			}
			seen[rel] = struct{}{}
			out = append(out, candidate{relPath: rel, absPath: path})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readAll fans candidate reads out over a worker pool and merges results;
// a per-file read error is non-fatal (the file is simply dropped, mirroring
// ParseError/IoError being file-scoped diagnostics rather than run-aborting).
func readAll(ctx context.Context, candidates []candidate) ([]*source.FileEntry, error) {
	jobs := make(chan candidate, len(candidates))
	for _, c := range candidates {
		jobs <- c
	}
	close(jobs)

	results := make(chan *source.FileEntry, len(candidates))
	n := workers.Count()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				data, err := os.ReadFile(c.absPath)
				if err != nil {
					continue
				}
				results <- source.New(c.relPath, c.absPath, data)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	entries := make([]*source.FileEntry, 0, len(candidates))
	for e := range results {
		entries = append(entries, e)
	}
	return entries, ctx.Err()
}
