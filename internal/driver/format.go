package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"rsnfmt/internal/config"
	"rsnfmt/internal/format"
	"rsnfmt/internal/source"
	"rsnfmt/internal/trace"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	Config *config.Config

	// Check reports which files would change without touching them.
	Check bool
	// Stdout returns formatted content in the results instead of writing files.
	Stdout bool
	// Diff fills FormatResult.Diff for changed files. Files are not written.
	Diff bool
	// Verify runs the round-trip check before accepting output.
	Verify bool

	Jobs  int
	Cache *Cache
}

// writes reports whether results go back to disk.
func (o FormatOptions) writes() bool {
	return !o.Check && !o.Stdout && !o.Diff
}

func (o FormatOptions) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	def := config.Default()
	return &def
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path string
	// File is the loaded source; diagnostics resolve Err's span against it. Nil if loading failed.
	File      *source.File
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Diff      string
}

// FormatPaths formats provided files or directories (recursively collecting .rsn files).
// Files are processed in parallel, at most opts.Jobs at a time. Per-file failures are
// reported in the results; the returned error covers collection and cancellation only.
// A file that fails to format is never written.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "format", trace.ParentID(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	cfg := opts.config()

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(gctx, path, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatPath(ctx context.Context, path string, cfg *config.Config, opts FormatOptions) FormatResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, path, trace.ParentID(ctx))
	ctx = trace.WithSpan(ctx, span)

	result := FormatResult{Path: path}
	defer func() {
		span.WithExtra("changed", strconv.FormatBool(result.Changed)).
			WithExtra("cached", strconv.FormatBool(result.Cached))
		detail := ""
		if result.Err != nil {
			detail = result.Err.Error()
		}
		span.End(detail)
	}()

	pass := trace.Begin(tracer, trace.ScopePass, "load", span.ID())
	raw, err := os.ReadFile(path)
	if err != nil {
		pass.End(err.Error())
		result.Err = fmt.Errorf("formatting %s: %w", path, err)
		return result
	}
	pass.WithExtra("bytes", strconv.Itoa(len(raw))).End("")

	fs := source.NewFileSet()
	id, err := fs.LoadBytes(path, raw)
	if err != nil {
		result.Err = fmt.Errorf("formatting %s: %w", path, err)
		return result
	}
	result.File = fs.Get(id)

	out, cached, err := formatSource(ctx, result.File, raw, cfg, opts)
	if err != nil {
		result.Err = fmt.Errorf("formatting %s: %w", path, err)
		return result
	}
	result.Cached = cached
	result.Changed = !bytes.Equal(raw, out)

	switch {
	case opts.Stdout:
		result.Formatted = out
	case opts.Diff:
		if result.Changed {
			result.Diff = UnifiedDiff(path, raw, out)
		}
	}

	if opts.writes() && result.Changed {
		pass := trace.Begin(tracer, trace.ScopePass, "write", span.ID())
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, out, mode.Perm()); err != nil {
			result.Err = fmt.Errorf("formatting %s: %w", path, err)
		}
		pass.End("")
	}
	return result
}

// formatSource produces the final bytes for sf, consulting the cache first. raw is the
// content as read, which keys the cache and is returned as is when already formatted.
func formatSource(ctx context.Context, sf *source.File, raw []byte, cfg *config.Config, opts FormatOptions) ([]byte, bool, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)

	key := KeyFor(raw, cfg, opts.Verify)
	if entry, ok, err := opts.Cache.Get(key); err == nil && ok {
		trace.Point(tracer, trace.ScopePass, "cache", "hit", parent)
		if entry.Unchanged {
			return raw, true, nil
		}
		return entry.Output, true, nil
	}

	name := "format"
	if opts.Verify {
		name = "verify"
	}
	pass := trace.Begin(tracer, trace.ScopePass, name, parent)
	var (
		out []byte
		err error
	)
	if opts.Verify {
		out, err = format.CheckRoundTrip(sf, cfg)
	} else {
		out, err = format.FormatFile(sf, cfg)
	}
	if err != nil {
		pass.End(err.Error())
		return nil, false, err
	}
	pass.End("")

	if sf.Flags&source.FileHadBOM != 0 {
		out = source.WithBOM(out)
	}

	entry := &CacheEntry{Fingerprint: cfg.Fingerprint()}
	if bytes.Equal(raw, out) {
		entry.Unchanged = true
	} else {
		entry.Output = out
	}
	if err := opts.Cache.Put(key, entry); err != nil {
		trace.Point(tracer, trace.ScopePass, "cache", "put failed: "+err.Error(), parent)
	}
	return out, false, nil
}

// FormatReader formats everything read from r, which is reported as name. The formatted
// content is always returned in Formatted; nothing is written. Read errors are returned
// directly, formatting errors land in the result.
func FormatReader(ctx context.Context, r io.Reader, name string, opts FormatOptions) (FormatResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return FormatResult{Path: name}, fmt.Errorf("reading %s: %w", name, err)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, name, trace.ParentID(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	fs := source.NewFileSet()
	result := FormatResult{Path: name, File: fs.Get(fs.AddVirtual(name, raw))}

	out, cached, err := formatSource(ctx, result.File, raw, opts.config(), opts)
	if err != nil {
		result.Err = fmt.Errorf("formatting %s: %w", name, err)
		return result, nil
	}
	result.Cached = cached
	result.Changed = !bytes.Equal(raw, out)
	result.Formatted = out
	if opts.Diff && result.Changed {
		result.Diff = UnifiedDiff(name, raw, out)
	}
	return result, nil
}
