package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfront/internal/diagfmt"
	"cfront/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.sym|directory>",
	Short: "Run symbol table scripts and report diagnostics",
	Long:  `Run one script file or every *.sym file within a directory through the declaration core and report diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent run cache")
}

// runCheck исполняет команду "check": прогоняет скрипт (или каталог скриптов),
// печатает их вывод и диагностики в выбранном формате и возвращает ненулевой
// код, если хоть один прогон завершился ошибкой.
func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnostics(cmd, manifest)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && manifest != nil && manifest.Config.Run.Jobs > 0 {
		jobs = manifest.Config.Run.Jobs
	}

	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiag,
		Jobs:           jobs,
		Logger:         &logger,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("cfront")
		if err != nil {
			logger.Warn().Err(err).Msg("disk cache unavailable")
		} else {
			opts.Cache = cache
		}
	}

	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []driver.FileResult
	if st.IsDir() {
		results, err = runCheckDir(cmd, path, opts, format, quiet)
		if err != nil {
			return err
		}
	} else {
		res, err := driver.Run(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		results = []driver.FileResult{*res}
	}

	failed := false
	for i := range results {
		if results[i].Failed || results[i].Bag.HasErrors() {
			failed = true
			break
		}
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{Color: color, ShowNotes: withNotes}
		for idx := range results {
			r := &results[idx]
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			if !quiet && r.Output != "" {
				fmt.Fprint(os.Stdout, r.Output)
			}
			diagfmt.Pretty(os.Stdout, r.Bag, prettyOpts)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludeNotes: withNotes}
		if len(results) == 1 && !st.IsDir() {
			if err := diagfmt.JSON(os.Stdout, results[0].Bag, jsonOpts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		} else {
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for i := range results {
				output[results[i].Path] = diagfmt.BuildDiagnosticsOutput(results[i].Bag, jsonOpts)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		}
	}

	if failed {
		// Диагностики уже напечатаны, usage-подсказка cobra здесь не нужна
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// runCheckDir прогоняет каталог: с прогресс-интерфейсом на терминале,
// либо молча с построчным логом в остальных случаях.
func runCheckDir(cmd *cobra.Command, dir string, opts driver.Options, format string, quiet bool) ([]driver.FileResult, error) {
	interactive := format == "pretty" && !quiet && isTerminal(os.Stdout)
	if interactive {
		return runDirWithUI(cmd.Context(), dir, opts)
	}
	results, err := driver.RunDir(cmd.Context(), dir, opts)
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return results, nil
}
