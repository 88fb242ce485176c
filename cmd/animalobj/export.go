package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/animalobj/internal/catalogue"
	"github.com/Faultbox/animalobj/internal/export"
	"github.com/Faultbox/animalobj/internal/logger"
	"github.com/Faultbox/animalobj/internal/sink"
)

var errExportFailed = errors.New("export failed")

func newExportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "export [ID|pattern...]",
		Short: "Write OBJ files for templates",
		Long: `Export writes one OBJ file per template.

Templates are given as IDs or glob patterns (e.g. "B*", "{PIG,COW}").
Without arguments the templates listed in the config are exported; an
empty list exports the whole catalogue.`,
		Example: `  animalobj export
  animalobj export DEFAULT COW
  animalobj export "B*" --out ./models --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args, dryRun)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.ov.OutputDir, "out", "o", "", "Output directory (default from config: animal_models)")
	f.StringVar(&a.ov.Prefix, "prefix", "", "File name prefix (default from config: Animal_)")
	f.IntVarP(&a.ov.Workers, "workers", "w", 0, "Templates exported concurrently (default from config)")
	f.BoolVar(&dryRun, "dry-run", false, "Assemble models without writing files")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, args []string, dryRun bool) error {
	cat, err := a.catalogue()
	if err != nil {
		return err
	}

	requests := args
	if len(requests) == 0 {
		requests = a.cfg.Export.Templates
	}
	ids, unmatched, err := catalogue.Select(cat, requests)
	if err != nil {
		return err
	}

	var s sink.Sink
	dir := sink.NewDir(a.cfg.Export.OutputDir)
	if dryRun {
		s = sink.NewMemory()
	} else {
		s = dir
	}

	exp := export.New(cat, s, logger.Log.Named("export"), export.Options{
		Prefix:    a.cfg.Export.Prefix,
		Extension: a.cfg.Export.Extension,
		Workers:   a.cfg.Export.Workers,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Animal Template OBJ Exporter")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	for _, p := range unmatched {
		logger.Warn("pattern matched no templates", zap.String("pattern", p))
		fmt.Fprintf(out, "WARNING: Pattern %s matched no templates\n", p)
	}

	results, runErr := exp.Run(cmd.Context(), ids)
	for _, r := range results {
		printResult(out, r, dir, dryRun)
	}

	sum := export.Summarize(results)
	fmt.Fprintln(out)
	switch {
	case dryRun:
		fmt.Fprintf(out, "Dry run complete! %d of %d templates assembled, nothing written.\n", sum.Created, len(results))
	case sum.Failed() == 0:
		fmt.Fprintf(out, "Export complete! OBJ files saved to: %s\n", absPath(dir.Root))
	default:
		fmt.Fprintf(out, "Export finished with %d failed of %d templates. OBJ files saved to: %s\n",
			sum.Failed(), len(results), absPath(dir.Root))
	}

	if sum.Created > 0 && !dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tips for Blender:")
		fmt.Fprintln(out, "  - Import via File > Import > Wavefront (.obj)")
		fmt.Fprintln(out, "  - Select all objects and Join (Ctrl+J) to combine")
		fmt.Fprintln(out, "  - Use 'Shade Smooth' for smoother look")
		fmt.Fprintln(out, "  - Add subdivision surface modifier for rounder shapes")
	}

	if runErr != nil {
		return runErr
	}
	if n := sum.Failed(); n > 0 {
		return fmt.Errorf("%w: %d of %d templates", errExportFailed, n, len(results))
	}
	return nil
}

func printResult(w io.Writer, r export.Result, dir *sink.Dir, dryRun bool) {
	switch r.Status() {
	case export.StatusCreated:
		if dryRun {
			fmt.Fprintf(w, "Assembled: %s (%d objects, %d vertices, %d bytes)\n", r.File, r.Objects, r.Vertices, r.Bytes)
		} else {
			fmt.Fprintf(w, "Created: %s\n", dir.Path(r.File))
		}
	case export.StatusNotFound:
		fmt.Fprintf(w, "WARNING: Template %s not found\n", r.ID)
	case export.StatusCanceled:
		fmt.Fprintf(w, "SKIPPED: Template %s (%v)\n", r.ID, r.Err)
	default:
		fmt.Fprintf(w, "ERROR: %v\n", r.Err)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
