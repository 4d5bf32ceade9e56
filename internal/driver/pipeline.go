package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cppdoc/internal/comment"
	"cppdoc/internal/correlate"
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/extract"
	"cppdoc/internal/lexer"
	"cppdoc/internal/model"
	"cppdoc/internal/observ"
	"cppdoc/internal/source"
	"cppdoc/internal/trace"
)

// FileResult is the outcome of one translation unit. Model is nil when the
// file could not be read; Err then holds the cause and Bag an IO4001.
type FileResult struct {
	Path    string
	File    *source.File
	Records []decl.Record
	Blocks  []comment.Block
	Model   *model.Model
	Bag     *diag.Bag
	Timer   *observ.Timer
	Cached  bool
	Err     error
}

// CorrelateFile loads path into the session's file set and runs the
// pipeline on it.
func CorrelateFile(ctx context.Context, sess *Session, path string) (*FileResult, error) {
	policy, err := sess.policy()
	if err != nil {
		return nil, err
	}
	ctx = withSessionTracer(ctx, sess)
	res, file := sess.load(path)
	if res != nil {
		return res, res.Err
	}
	return sess.correlateLoaded(ctx, path, file, policy), nil
}

// CorrelateSource runs the pipeline on in-memory content.
func CorrelateSource(ctx context.Context, sess *Session, name string, content []byte) (*FileResult, error) {
	policy, err := sess.policy()
	if err != nil {
		return nil, err
	}
	ctx = withSessionTracer(ctx, sess)
	file := sess.FileSet.Get(sess.FileSet.AddVirtual(name, content))
	return sess.correlateLoaded(ctx, name, file, policy), nil
}

func withSessionTracer(ctx context.Context, sess *Session) context.Context {
	if trace.FromContext(ctx) == trace.Nop && sess.Tracer != nil {
		return trace.WithTracer(ctx, sess.Tracer)
	}
	return ctx
}

// load reads path. On failure it returns a finished result carrying the
// I/O diagnostic.
func (s *Session) load(path string) (*FileResult, *source.File) {
	id, err := s.FileSet.Load(path)
	if err != nil {
		bag := diag.NewBag(s.maxDiagnostics())
		bag.Add(&diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
			Primary:  source.Span{}, // Empty span for I/O errors
		})
		s.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return &FileResult{Path: path, Bag: bag, Err: fmt.Errorf("%s: %w", path, err)}, nil
	}
	return nil, s.FileSet.Get(id)
}

func (s *Session) correlateLoaded(ctx context.Context, path string, file *source.File, policy correlate.Policy) *FileResult {
	started := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)

	res := &FileResult{
		Path: path,
		File: file,
		Bag:  diag.NewBag(s.maxDiagnostics()),
	}
	if s.Timings {
		res.Timer = observ.NewTimer()
	}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	hidden := s.Hidden(path)
	key := CacheKey(file.Hash, hidden)
	if !s.fromCache(key, res) {
		s.frontEnd(ctx, res, hidden, reporter)
		if s.Cache != nil {
			payload := newPayload(path, res.Records, res.Blocks, res.Bag)
			if err := s.Cache.Put(key, payload); err != nil {
				s.Logger.Error(err, "disk cache write failed", "path", path)
			}
		}
	}

	s.emit(Event{File: path, Stage: StageCorrelate, Status: StatusWorking})
	done := s.phase(ctx, res.Timer, "correlate")
	res.Model = correlate.Correlate(file, res.Records, res.Blocks, correlate.Options{
		Policy:   policy,
		Reporter: reporter,
		Registry: s.Registry,
	})
	done("entities=" + strconv.Itoa(res.Model.Len()))
	res.Bag.Sort()

	s.Logger.V(1).Info("correlated", "path", path,
		"records", len(res.Records), "entities", res.Model.Len(),
		"diagnostics", res.Bag.Len(), "cached", res.Cached)
	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	s.emit(Event{
		File:    path,
		Stage:   StageCorrelate,
		Status:  status,
		Elapsed: time.Since(started),
		Counts:  res.counts(),
		Cached:  res.Cached,
	})
	span.WithExtra("entities", strconv.Itoa(res.Model.Len())).End("")
	return res
}

func (res *FileResult) counts() Counts {
	c := Counts{Blocks: len(res.Blocks), Records: len(res.Records)}
	if res.Model != nil {
		c.Entities = res.Model.Len()
		c.Documented = res.Model.DocumentedLen()
		c.Orphans = len(res.Model.Orphans())
	}
	return c
}

func (s *Session) fromCache(key Key, res *FileResult) bool {
	if s.Cache == nil {
		return false
	}
	var payload DiskPayload
	ok, err := s.Cache.Get(key, &payload)
	if err != nil {
		s.Logger.V(1).Info("disk cache entry ignored", "path", res.Path, "error", err.Error())
		return false
	}
	if !ok {
		return false
	}
	payload.rebase(res.File.ID)
	res.Records = payload.Records
	res.Blocks = payload.Blocks
	for i := range payload.Diagnostics {
		res.Bag.Add(&payload.Diagnostics[i])
	}
	res.Cached = true
	return true
}

// frontEnd runs lexer, comment scanner and extractor.
func (s *Session) frontEnd(ctx context.Context, res *FileResult, hidden []string, reporter diag.Reporter) {
	s.emit(Event{File: res.Path, Stage: StageLex, Status: StatusWorking})
	done := s.phase(ctx, res.Timer, "lex")
	toks := lexer.Tokenize(res.File, lexer.Options{
		Reporter: reporter,
		Hidden:   lexer.HiddenSet(hidden),
	})
	done("tokens=" + strconv.Itoa(len(toks)))

	done = s.phase(ctx, res.Timer, "scan")
	res.Blocks = comment.Scan(res.File, toks)
	done("blocks=" + strconv.Itoa(len(res.Blocks)))

	s.emit(Event{File: res.Path, Stage: StageExtract, Status: StatusWorking})
	done = s.phase(ctx, res.Timer, "extract")
	res.Records = extract.Extract(res.File, toks, extract.Options{
		Reporter:  reporter,
		MaxErrors: s.maxErrors(),
	})
	done("records=" + strconv.Itoa(len(res.Records)))
}

// phase starts a timed, traced pass and returns the function that ends it.
func (s *Session) phase(ctx context.Context, timer *observ.Timer, name string) func(note string) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	idx := -1
	if timer != nil {
		idx = timer.Begin(name)
	}
	return func(note string) {
		if timer != nil {
			timer.End(idx, note)
		}
		span.End(note)
	}
}
