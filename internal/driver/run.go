package driver

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"cfront/internal/diag"
	"cfront/internal/script"
	"cfront/internal/source"
)

// DefaultMaxDiagnostics bounds a run's diagnostic bag when the caller
// does not say otherwise.
const DefaultMaxDiagnostics = 64

// Options configure script runs.
type Options struct {
	// MaxDiagnostics caps the per-file diagnostic bag.
	MaxDiagnostics int

	// Jobs bounds directory-run parallelism; <=0 means GOMAXPROCS.
	Jobs int

	// Cache, when non-nil, short-circuits unchanged inputs and stores
	// fresh results. Only tool output is cached, never table state.
	Cache *DiskCache

	// Logger enables the table's declaration trace.
	Logger *zerolog.Logger

	// Progress, when non-nil, is called after each file of a directory
	// run completes. Calls may come from multiple goroutines.
	Progress func(res *FileResult)
}

// FileResult is the outcome of running one script file.
type FileResult struct {
	Path   string
	Output string
	Failed bool      // a fatal table error cut the run short
	Cached bool      // served from the disk cache
	Bag    *diag.Bag // diagnostics, also populated on load errors
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Run loads and executes a single script file. Problems reading the file
// become IO diagnostics in the result, not Go errors; the error return is
// reserved for a canceled context.
func Run(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &FileResult{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Failed = true
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: path},
			"failed to load file: "+err.Error()))
		return res, nil
	}

	key := HashContent(data)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: path},
				"cache read failed: "+err.Error()))
		}
		if hit {
			res.Output = payload.Output
			res.Failed = payload.Failed
			res.Cached = true
			res.Bag = payloadToBag(&payload, opts.maxDiagnostics())
			return res, nil
		}
	}

	out := script.Run(path, data, script.Options{
		Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		Logger:   opts.Logger,
	})
	res.Output = out.Output
	res.Failed = out.Failed

	if opts.Cache != nil {
		payload := &DiskPayload{
			Schema: diskCacheSchemaVersion,
			Output: res.Output,
			Failed: res.Failed,
			Diags:  diagsToPayload(res.Bag),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: path},
				"cache write failed: "+err.Error()))
		}
	}
	return res, nil
}
