package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	outDir   string   // output directory (default: next to each input)
	formats  []string // output formats: svg, png, html, json
	scale    float64  // PNG scale factor
	theme    string   // theme override: dark, light
	idPrefix string   // SVG def id prefix
	jobs     int      // max panels rendered concurrently
	noCache  bool     // disable the artifact cache
	refresh  bool     // ignore cached artifacts
	watch    bool     // re-render on file changes
}

// renderResult describes one rendered panel file.
type renderResult struct {
	input   string
	outputs []string
	layout  string
	cached  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <panel-file>...",
		Short: "Render panel files to SVG, PNG, HTML or JSON",
		Long: `Render one or more panel files (TOML, YAML or JSON).

Outputs are written next to each input, or into --out, named after the
input file: cpu.toml renders to cpu.svg, cpu.png and so on.`,
		Example: `  bigvalue render cpu.toml
  bigvalue render panels/*.yaml -f svg,png -o out/
  bigvalue render cpu.toml --theme light --watch`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePanelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			opts.formats = formats
			if opts.theme != "" {
				if _, err := panel.ParseThemeType(opts.theme); err != nil {
					return err
				}
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := c.renderAll(cmd.Context(), runner, args, opts); err != nil {
				return err
			}
			if opts.watch {
				return c.watch(cmd.Context(), runner, args, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, html, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each input)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor (0 < scale <= 8)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the panel theme: dark, light")
	cmd.Flags().StringVar(&opts.idPrefix, "id-prefix", "", "prefix for SVG gradient and filter ids")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "panels rendered concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when a panel file changes")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// renderAll renders every input concurrently. The first failure cancels the
// remaining renders and is returned.
func (c *CLI) renderAll(ctx context.Context, runner *pipeline.Runner, inputs []string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	var spinner *Spinner
	if len(inputs) > 1 && !c.verbose() && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d panels...", len(inputs)))
		spinner.Start()
	}

	results := make([]renderResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.jobs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			res, err := c.renderFile(gctx, runner, input, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()

	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		printResult(res)
	}
	prog.done(fmt.Sprintf("Rendered %d panel(s)", len(inputs)))
	return nil
}

// renderFile loads one panel file, runs the pipeline and writes its outputs.
func (c *CLI) renderFile(ctx context.Context, runner *pipeline.Runner, input string, opts renderOpts) (renderResult, error) {
	props, err := panel.Load(input)
	if err != nil {
		return renderResult{}, err
	}
	if opts.theme != "" {
		tt, err := panel.ParseThemeType(opts.theme)
		if err != nil {
			return renderResult{}, err
		}
		props.Theme = panel.ThemeFor(tt)
	}

	result, err := runner.Execute(ctx, props, pipeline.Options{
		Formats:  opts.formats,
		Scale:    opts.scale,
		IDPrefix: opts.idPrefix,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		return renderResult{}, err
	}

	res := renderResult{
		input:  input,
		layout: result.Layout.Type.String(),
		cached: result.CacheInfo.RenderHit,
	}
	for _, format := range opts.formats {
		path := outputPath(input, opts.outDir, format)
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return renderResult{}, err
		}
		res.outputs = append(res.outputs, path)
		c.Logger.Debug("wrote output", "path", path, "bytes", len(result.Artifacts[format]))
	}
	return res, nil
}

// watch re-renders inputs as they change until ctx is cancelled. Directories
// are watched rather than files so editors that save by rename still trigger.
func (c *CLI) watch(ctx context.Context, runner *pipeline.Runner, inputs []string, opts renderOpts) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(inputs))
	dirs := make(map[string]bool)
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		watched[abs] = input
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	printInfo("Watching %d panel file(s) for changes (ctrl+c to stop)", len(inputs))

	changed := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			input, ok := watched[event.Name]
			if !ok || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if t, ok := timers[input]; ok {
				t.Stop()
			}
			timers[input] = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- input:
				case <-ctx.Done():
				}
			})

		case input := <-changed:
			res, err := c.renderFile(ctx, runner, input, opts)
			if err != nil {
				printError("%s: %v", input, err)
				continue
			}
			printResult(res)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)
		}
	}
}

func printResult(res renderResult) {
	printSuccess("%s", res.input)
	for _, out := range res.outputs {
		printFile(out)
	}
	fmt.Println(statsLine(res.layout, len(res.outputs), res.cached))
}

// outputPath names the output of input in the given format. An output that
// would overwrite its own input gets a ".render" suffix instead.
func outputPath(input, outDir, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	path := filepath.Join(dir, base+"."+format)
	if filepath.Clean(path) == filepath.Clean(input) {
		path = filepath.Join(dir, base+".render."+format)
	}
	return path
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func jobLimit(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
