// Package export turns catalogue templates into OBJ files.
package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/animalobj/internal/catalogue"
	"github.com/Faultbox/animalobj/internal/creature"
	"github.com/Faultbox/animalobj/internal/mesh"
	"github.com/Faultbox/animalobj/internal/sink"
)

// Options controls file naming and parallelism.
type Options struct {
	Prefix    string // File name prefix, e.g. "Animal_"
	Extension string // File extension including the dot
	Workers   int    // Templates exported concurrently; values below 1 mean 1
}

// DefaultOptions returns the standard Animal_<ID>.obj naming with one worker.
func DefaultOptions() Options {
	return Options{
		Prefix:    "Animal_",
		Extension: ".obj",
		Workers:   1,
	}
}

// Status classifies the outcome of one template export.
type Status int

// Export outcomes.
const (
	StatusCreated Status = iota
	StatusNotFound
	StatusMalformed
	StatusWriteFailed
	StatusCanceled
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusNotFound:
		return "not found"
	case StatusMalformed:
		return "malformed"
	case StatusWriteFailed:
		return "write failed"
	case StatusCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes the export of one requested template.
type Result struct {
	ID       string
	Name     string // Display name, empty if the template was not found
	File     string // Name handed to the sink
	Objects  int
	Vertices int
	Bytes    int
	Err      error
}

// Status classifies the result from its error.
func (r Result) Status() Status {
	switch {
	case r.Err == nil:
		return StatusCreated
	case errors.Is(r.Err, catalogue.ErrNotFound):
		return StatusNotFound
	case errors.Is(r.Err, creature.ErrMalformedTemplate):
		return StatusMalformed
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusWriteFailed
	}
}

// Exporter assembles templates from a catalogue and writes them to a sink.
type Exporter struct {
	cat  catalogue.Catalogue
	sink sink.Sink
	log  *zap.Logger
	opts Options
}

// New creates an exporter. A nil logger disables logging.
func New(cat catalogue.Catalogue, s sink.Sink, log *zap.Logger, opts Options) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Exporter{cat: cat, sink: s, log: log, opts: opts}
}

// FileName returns the output name for a template ID.
func (e *Exporter) FileName(id string) string {
	return e.opts.Prefix + id + e.opts.Extension
}

// Export assembles and writes a single template. Failures are reported in
// the result and logged; they never panic or abort.
func (e *Exporter) Export(id string) Result {
	res := Result{ID: id, File: e.FileName(id)}
	log := e.log.With(zap.String("template", id))

	t, err := e.cat.Lookup(id)
	if err != nil {
		res.Err = err
		if errors.Is(err, catalogue.ErrNotFound) {
			log.Warn("template not found")
		} else {
			log.Error("template rejected", zap.Error(err))
		}
		return res
	}
	res.Name = t.DisplayName()

	doc, err := mesh.Assemble(t)
	if err != nil {
		res.Err = err
		log.Error("template rejected", zap.Error(err))
		return res
	}

	data := doc.Bytes()
	if err := e.sink.Write(res.File, data); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", res.File, err)
		log.Error("write failed", zap.String("file", res.File), zap.Error(err))
		return res
	}

	res.Objects = len(doc.Objects)
	res.Vertices = doc.GetTotalVertexCount()
	res.Bytes = len(data)
	log.Debug("exported",
		zap.String("file", res.File),
		zap.Int("objects", res.Objects),
		zap.Int("vertices", res.Vertices),
		zap.Int("bytes", res.Bytes),
	)
	return res
}

// Run exports every ID, up to Options.Workers at a time. Results are
// returned in request order regardless of completion order. A failed
// template does not stop the others; the returned error is only set when
// ctx is cancelled, in which case unstarted templates carry ctx's error.
func (e *Exporter) Run(ctx context.Context, ids []string) ([]Result, error) {
	results := make([]Result, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{ID: id, File: e.FileName(id), Err: err}
				return nil
			}
			results[i] = e.Export(id)
			return nil
		})
	}
	_ = g.Wait() // workers report through results

	return results, ctx.Err()
}

// Summary counts results by status.
type Summary struct {
	Created     int
	NotFound    int
	Malformed   int
	WriteFailed int
	Canceled    int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status() {
		case StatusCreated:
			s.Created++
		case StatusNotFound:
			s.NotFound++
		case StatusMalformed:
			s.Malformed++
		case StatusWriteFailed:
			s.WriteFailed++
		case StatusCanceled:
			s.Canceled++
		}
	}
	return s
}

// Failed returns the number of results that did not produce a file.
func (s Summary) Failed() int {
	return s.NotFound + s.Malformed + s.WriteFailed + s.Canceled
}
