// Package batch compiles every table of a project in parallel.
//
// Tables are independent: each has its own source and outputs, so a failure
// is logged, its stale outputs are deleted and the remaining tables carry on.
// Run returns the failures combined with multierr.
package batch

import (
	"cmp"
	"context"
	"os"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/datatable"
	"github.com/wippyai/datatable/codegen"
	"github.com/wippyai/datatable/dictionary"
	"github.com/wippyai/datatable/errors"
	"github.com/wippyai/datatable/internal/assets"
	"github.com/wippyai/datatable/internal/collection"
	"github.com/wippyai/datatable/internal/config"
	"github.com/wippyai/datatable/processor"
)

// EventKind tells what happened to a table.
type EventKind int

const (
	EventStart EventKind = iota
	EventDone
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventDone:
		return "done"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event reports progress. Finished counts completed tables, Total all
// tables of the run.
type Event struct {
	Kind     EventKind
	Set      string
	Table    string
	Finished int
	Total    int
	Stats    processor.Stats
	Err      error
}

// Result is the outcome of one table.
type Result struct {
	Set   string
	Table string
	Stats processor.Stats
	Err   error
}

// Report summarizes a run.
type Report struct {
	Results []Result
}

// Failed returns the number of tables that failed.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Totals adds up the row statistics of the successful tables.
func (r Report) Totals() processor.Stats {
	var t processor.Stats
	for _, res := range r.Results {
		if res.Err != nil {
			continue
		}
		t.Rows += res.Stats.Rows
		t.Written += res.Stats.Written
		t.Omitted += res.Stats.Omitted
		t.Defaulted += res.Stats.Defaulted
		t.Bytes += res.Stats.Bytes
	}
	return t
}

// Options tune a run.
type Options struct {
	// Jobs bounds parallel compiles; zero uses the project setting.
	Jobs   int
	Logger *zap.Logger
	// Progress receives events one at a time.
	Progress func(Event)
}

type job struct {
	set      *config.Set
	name     string
	template string
}

type runner struct {
	log      *zap.Logger
	progress func(Event)

	mu       sync.Mutex
	finished int
	total    int
	results  []Result
	errs     error
}

// Run compiles every set of cfg.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Report, error) {
	r := &runner{log: opts.Logger, progress: opts.Progress}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	jobs, err := r.plan(cfg)
	if err != nil {
		return Report{}, err
	}
	r.total = len(jobs)

	limit := opts.Jobs
	if limit <= 0 {
		limit = cfg.Jobs
	}
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r.compile(j)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		r.errs = multierr.Append(r.errs, err)
	}

	slices.SortFunc(r.results, func(a, b Result) int {
		if c := cmp.Compare(a.Set, b.Set); c != 0 {
			return c
		}
		return cmp.Compare(a.Table, b.Table)
	})
	return Report{Results: r.results}, r.errs
}

// plan resolves table names and prepares output directories.
func (r *runner) plan(cfg *config.Config) ([]job, error) {
	var jobs []job
	for i := range cfg.Sets {
		s := &cfg.Sets[i]
		names, err := tableNames(s)
		if err != nil {
			return nil, err
		}
		for _, dir := range []string{s.Output, s.Code} {
			if dir == "" {
				continue
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.IO(errors.PhaseBatch, "create output directory", dir, err)
			}
		}

		var tmpl string
		if s.Kind == config.KindTable && s.Code != "" {
			tmpl = codegen.DefaultTemplate
			if s.Template != "" {
				if tmpl, err = processor.ReadText(s.Template, s.CodeEncoding); err != nil {
					return nil, err
				}
			}
		}

		r.log.Info("table set planned", zap.String("set", s.Name), zap.Int("tables", len(names)))
		for _, name := range names {
			jobs = append(jobs, job{set: s, name: name, template: tmpl})
		}
	}
	return jobs, nil
}

// tableNames reads the set's collection, or discovers the source directory
// and records the result as the collection.
func tableNames(s *config.Set) ([]string, error) {
	if s.Collection != "" {
		if _, err := os.Stat(s.Collection); err == nil {
			return collection.Load(s.Collection)
		}
	}
	names, err := collection.Discover(s.Source)
	if err != nil {
		return nil, err
	}
	if s.Collection != "" {
		if err := collection.Write(s.Collection, names); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (r *runner) compile(j job) {
	log := r.log.With(zap.String("set", j.set.Name), zap.String("table", j.name))
	r.emit(Event{Kind: EventStart, Set: j.set.Name, Table: j.name})

	var (
		stats processor.Stats
		err   error
	)
	switch j.set.Kind {
	case config.KindDictionary:
		err = compileDictionary(j.set, j.name, log)
	default:
		stats, err = compileTable(j, log)
	}

	res := Result{Set: j.set.Name, Table: j.name, Stats: stats, Err: err}
	ev := Event{Kind: EventDone, Set: j.set.Name, Table: j.name, Stats: stats, Err: err}
	if err != nil {
		ev.Kind = EventFailed
		log.Error("compile table failure", zap.Error(err))
	}

	r.mu.Lock()
	r.results = append(r.results, res)
	if err != nil {
		r.errs = multierr.Append(r.errs, errors.Wrap(errors.PhaseBatch, errors.KindInvalidData, err, j.set.Name+"/"+j.name))
	}
	r.finished++
	ev.Finished, ev.Total = r.finished, r.total
	if r.progress != nil {
		r.progress(ev)
	}
	r.mu.Unlock()
}

func (r *runner) emit(ev Event) {
	if r.progress == nil {
		return
	}
	r.mu.Lock()
	ev.Finished, ev.Total = r.finished, r.total
	r.progress(ev)
	r.mu.Unlock()
}

func compileTable(j job, log *zap.Logger) (processor.Stats, error) {
	s := j.set
	out := datatable.Outputs{
		Data:         assets.Data(s.Output, j.name),
		CodeTemplate: j.template,
		CodeEncoding: s.CodeEncoding,
		CodeParams:   codegen.Params{Package: s.Package},
	}
	if s.Strings {
		out.Strings = assets.Strings(s.Output, j.name)
	}
	if j.template != "" {
		out.Code = assets.Code(s.Code, j.name)
	}

	res, err := datatable.Compile(assets.Text(s.Source, j.name), out, s.Layout,
		processor.WithEncoding(s.Encoding),
		processor.WithCommentMarker(s.CommentMarker),
		processor.WithLogger(log))
	if err != nil {
		if res != nil {
			return res.Stats, err
		}
		return processor.Stats{}, err
	}
	return res.Stats, nil
}

func compileDictionary(s *config.Set, name string, log *zap.Logger) error {
	p, err := dictionary.New(assets.Text(s.Source, name), s.Encoding, s.KeyColumn, s.ValueColumn,
		dictionary.WithLogger(log),
		dictionary.WithCommentMarker(s.CommentMarker))
	target := assets.Data(s.Output, name)
	if err == nil {
		err = p.GenerateDataFile(target)
	}
	if err != nil {
		if rerr := os.Remove(target); rerr != nil && !os.IsNotExist(rerr) {
			err = multierr.Append(err, errors.IO(errors.PhaseBatch, "remove stale output", target, rerr))
		}
	}
	return err
}
