package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"cppdoc/internal/config"
	"cppdoc/internal/source"
	"cppdoc/internal/trace"
)

// SourceExtensions are the file extensions picked up from directory arguments.
var SourceExtensions = []string{
	".h", ".hh", ".hpp", ".hxx", ".h++",
	".c", ".cc", ".cpp", ".cxx", ".c++",
	".ipp", ".inl",
}

func isSourceFile(path string) bool {
	return slices.Contains(SourceExtensions, strings.ToLower(filepath.Ext(path)))
}

// listSourceFiles возвращает отсортированный список исходников C/C++ в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Inputs resolves command-line arguments into the list of files to process.
// Directories expand to their C/C++ sources; without arguments the
// configured inputs are globbed from root. Per-file settings of configured
// inputs are remembered by the session.
func (s *Session) Inputs(root string, args []string) ([]string, error) {
	if len(args) == 0 {
		sources, err := s.Config.Sources(root)
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(sources))
		for _, src := range sources {
			s.sources[src.Path] = src
			paths = append(paths, src.Path)
		}
		return paths, nil
	}

	var paths []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			// unreadable files surface as IO4001 later
			add(arg)
			continue
		}
		files, err := listSourceFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return paths, nil
}

// Source returns the configured settings of path, if any.
func (s *Session) Source(path string) (config.Source, bool) {
	src, ok := s.sources[path]
	return src, ok
}

// CorrelateFiles runs the pipeline over paths with at most jobs files in
// flight (0 means GOMAXPROCS). Results keep the order of paths. Cancellation
// is checked between files; the returned error is the context error or a
// configuration error, never a per-file failure; after cancellation the
// results of files that never started are nil.
func CorrelateFiles(ctx context.Context, sess *Session, paths []string, jobs int) ([]*FileResult, error) {
	policy, err := sess.policy()
	if err != nil {
		return nil, err
	}
	ctx = withSessionTracer(ctx, sess)
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "correlate")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	results := make([]*FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	// FileSet не потокобезопасен: загружаем всё до запуска горутин
	files := make([]*source.File, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		sess.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		results[i], files[i] = sess.load(path)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		if files[i] == nil {
			continue
		}
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = sess.correlateLoaded(gctx, path, files[i], policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	sess.Logger.V(1).Info("correlated files", "count", len(paths), "jobs", jobs)
	return results, nil
}
