// Package ingest adds proposal documents to the scoring service's comparison corpus.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/novelty-score/internal/types"
	"github.com/jonathan/novelty-score/internal/validation"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of uploads run at once.
const DefaultConcurrency = 2

// SuccessMessage is shown when the service confirms without a message.
const SuccessMessage = "Proposal ingested successfully!"

// ErrTitleWithMany is returned when a title is given for more than one document.
var ErrTitleWithMany = errors.New("a title can only be set when ingesting a single document")

// Uploader sends one document to the service. *client.Client implements it.
type Uploader interface {
	Ingest(ctx context.Context, file *types.FileInput, title string) (*types.IngestResponse, error)
}

// Options configures the workflow.
type Options struct {
	Concurrency int
	Verbose     bool
}

// Outcome is the result of ingesting one document.
type Outcome struct {
	Filename string
	Size     int64
	Response *types.IngestResponse
	Message  string
	Err      error
}

// Workflow validates and uploads documents.
type Workflow struct {
	uploader    Uploader
	concurrency int
	verbose     bool
}

// New creates a workflow. A nil opts uses defaults.
func New(uploader Uploader, opts *Options) *Workflow {
	w := &Workflow{uploader: uploader, concurrency: DefaultConcurrency}
	if opts != nil {
		if opts.Concurrency > 0 {
			w.concurrency = opts.Concurrency
		}
		w.verbose = opts.Verbose
	}
	return w
}

// One ingests a single document. Validation failures make no request.
func (w *Workflow) One(ctx context.Context, file *types.FileInput, title string) (Outcome, error) {
	if err := validation.Validate(file); err != nil {
		return Outcome{Filename: filename(file), Err: err}, err
	}
	outcome := w.upload(ctx, file, title)
	return outcome, outcome.Err
}

// Many ingests several documents with bounded concurrency. Every document is
// validated before any upload starts. Outcomes are returned in argument
// order; a failed upload does not stop the others, and the returned error
// joins all failures.
func (w *Workflow) Many(ctx context.Context, files []*types.FileInput, title string) ([]Outcome, error) {
	if len(files) == 0 {
		return nil, validation.Validate((*types.FileInput)(nil))
	}
	if len(files) > 1 && title != "" {
		return nil, ErrTitleWithMany
	}
	for _, file := range files {
		if err := validation.Validate(file); err != nil {
			return nil, fmt.Errorf("%s: %w", filename(file), err)
		}
	}

	outcomes := make([]Outcome, len(files))

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = w.upload(ctx, file, title)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Filename, o.Err))
		}
	}
	return outcomes, errors.Join(errs...)
}

func (w *Workflow) upload(ctx context.Context, file *types.FileInput, title string) Outcome {
	outcome := Outcome{Filename: file.Filename, Size: file.Size()}

	if w.verbose {
		log.Printf("[VERBOSE] Ingesting %s (%s)", file.Filename, humanize.Bytes(uint64(file.Size())))
	}

	resp, err := w.uploader.Ingest(ctx, file, title)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Response = resp
	outcome.Message = resp.Message
	if outcome.Message == "" {
		outcome.Message = SuccessMessage
	}
	return outcome
}

func filename(file *types.FileInput) string {
	if file == nil {
		return ""
	}
	return file.Filename
}
