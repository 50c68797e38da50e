package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rsnfmt/internal/config"
	"rsnfmt/internal/diagfmt"
	"rsnfmt/internal/driver"
	"rsnfmt/internal/observ"
	"rsnfmt/internal/prof"
)

func init() {
	f := rootCmd.Flags()
	f.Bool("check", false, "report files that need formatting without rewriting them")
	f.Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	f.Bool("diff", false, "print a unified diff instead of rewriting files")
	f.Bool("verify", false, "check that output keeps the same tokens and is stable before accepting it")
	f.Bool("cache", false, "skip files already formatted with the same config")
	f.Bool("clear-cache", false, "drop the format cache before running")
	f.Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	f.String("format", "text", "report format (text|json)")

	f.Int("max-width", 0, "override max_width")
	f.Int("indent", 0, "override indent")
	f.Bool("hard-tab", false, "override hard_tab")
	f.String("line-ending", "", "override line_ending (Detect|Platform|Lf|CrLf)")
}

// overrideFlags maps CLI flags onto config keys.
var overrideFlags = []struct{ flag, key string }{
	{"max-width", "max_width"},
	{"indent", "indent"},
	{"hard-tab", "hard_tab"},
	{"line-ending", "line_ending"},
}

type formatFlags struct {
	check, stdout, diff, verify bool
	cache, clearCache           bool
	quiet                       bool
	jobs                        int
	format                      string
}

func readFormatFlags(cmd *cobra.Command) (formatFlags, error) {
	var (
		ff  formatFlags
		err error
	)
	f := cmd.Flags()
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"check", &ff.check},
		{"stdout", &ff.stdout},
		{"diff", &ff.diff},
		{"verify", &ff.verify},
		{"cache", &ff.cache},
		{"clear-cache", &ff.clearCache},
	} {
		if *b.dst, err = f.GetBool(b.name); err != nil {
			return ff, err
		}
	}
	if ff.jobs, err = f.GetInt("jobs"); err != nil {
		return ff, err
	}
	if ff.format, err = f.GetString("format"); err != nil {
		return ff, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, err
	}

	switch {
	case ff.format != "text" && ff.format != "json":
		return ff, fmt.Errorf("unsupported output format %q (must be text or json)", ff.format)
	case ff.stdout && ff.check:
		return ff, fmt.Errorf("--stdout cannot be used with --check")
	case ff.stdout && ff.diff:
		return ff, fmt.Errorf("--stdout cannot be used with --diff")
	case ff.stdout && ff.format != "text":
		return ff, fmt.Errorf("--stdout is only supported with text output")
	}
	return ff, nil
}

// loadConfig resolves the configuration for cwd, applying CLI overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Result, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	opts := config.LoadOptions{ConfigPath: path}
	for _, o := range overrideFlags {
		fl := cmd.Flags().Lookup(o.flag)
		if fl == nil || !fl.Changed {
			continue
		}
		if err := opts.Overrides.Set(o.key, fl.Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}
	return config.Load(opts)
}

func runFormat(cmd *cobra.Command, args []string) (err error) {
	ff, err := readFormatFlags(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if isTerminal(os.Stdin) {
			return fmt.Errorf("no input paths (use - to read stdin)")
		}
		args = []string{"-"}
	}

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if perr := session.Stop(); perr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", perr)
		}
	}()

	timer, err := newTimer(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if timer != nil {
			_ = timer.WriteSummary(cmd.ErrOrStderr())
		}
	}()

	endPhase := timer.Begin("config")
	loaded, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	endPhase(fmt.Sprintf("%d file(s)", len(loaded.Sources)))

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	var cache *driver.Cache
	if ff.cache || ff.clearCache {
		if cache, err = driver.OpenCache("rsnfmt"); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if ff.clearCache {
			if err = cache.DropAll(); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
		}
		if !ff.cache {
			cache = nil
		}
	}

	opts := driver.FormatOptions{
		Config: &loaded.Config,
		Check:  ff.check,
		Stdout: ff.stdout,
		Diff:   ff.diff,
		Verify: ff.verify,
		Jobs:   ff.jobs,
		Cache:  cache,
	}

	var (
		paths   []string
		results []driver.FormatResult
		stdin   bool
	)
	for _, a := range args {
		if a == "-" {
			stdin = true
			continue
		}
		paths = append(paths, a)
	}
	endPhase = timer.Begin("format")
	if stdin {
		res, err := driver.FormatReader(cmd.Context(), os.Stdin, "<stdin>", opts)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	if len(paths) > 0 {
		fileResults, err := driver.FormatPaths(cmd.Context(), paths, opts)
		if err != nil {
			return err
		}
		results = append(results, fileResults...)
	}

	endPhase(fmt.Sprintf("%d result(s)", len(results)))

	endPhase = timer.Begin("report")
	var failed, changed bool
	switch ff.format {
	case "json":
		failed, changed, err = renderJSON(cmd.OutOrStdout(), results)
		if err != nil {
			return err
		}
	default:
		colorOut, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		colorErr, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		failed, changed = renderText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, ff, colorOut, colorErr)
	}

	endPhase("")

	switch {
	case failed:
		return &exitError{"failed to format some files"}
	case ff.check && changed:
		return &exitError{"formatting changes required"}
	}
	return nil
}

func renderText(out, errOut io.Writer, results []driver.FormatResult, ff formatFlags, colorOut, colorErr bool) (failed, changed bool) {
	for _, res := range results {
		if res.Err != nil {
			failed = true
			d := diagfmt.FromError(res.Path, res.File, res.Err)
			if err := diagfmt.Pretty(errOut, d, diagfmt.PrettyOpts{Color: colorErr}); err != nil {
				fmt.Fprintf(errOut, "%s: %v\n", res.Path, res.Err)
			}
			continue
		}
		changed = changed || res.Changed

		switch {
		case ff.diff:
			if res.Diff != "" {
				_ = driver.WriteDiff(out, res.Diff, colorOut)
			}
		case ff.check:
			if res.Changed && !ff.quiet {
				fmt.Fprintln(out, res.Path)
			}
		case ff.stdout || res.Path == "<stdin>":
			_, _ = out.Write(res.Formatted)
		default:
			if res.Changed && !ff.quiet {
				fmt.Fprintf(errOut, "reformatted %s\n", res.Path)
			}
		}
	}
	return failed, changed
}

type jsonResult struct {
	Path       string                  `json:"path"`
	Changed    bool                    `json:"changed"`
	Cached     bool                    `json:"cached,omitempty"`
	Diff       string                  `json:"diff,omitempty"`
	Diagnostic *diagfmt.DiagnosticJSON `json:"diagnostic,omitempty"`
}

func renderJSON(out io.Writer, results []driver.FormatResult) (failed, changed bool, err error) {
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Diff: res.Diff}
		if res.Err != nil {
			failed = true
			d := diagfmt.ToJSON(diagfmt.FromError(res.Path, res.File, res.Err), diagfmt.PathModeAuto, "")
			jr.Diagnostic = &d
		}
		changed = changed || res.Changed
		payload = append(payload, jr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return failed, changed, enc.Encode(payload)
}

// startProfiling starts the profiles requested by --cpuprofile, --memprofile and --runtime-trace.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	pf := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = pf.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = pf.GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Trace, err = pf.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, fmt.Errorf("prof: %w", err)
	}
	return session, nil
}

// newTimer returns a timer when --timings is set, nil otherwise.
func newTimer(cmd *cobra.Command) (*observ.Timer, error) {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !on {
		return nil, err
	}
	return observ.NewTimer(), nil
}
