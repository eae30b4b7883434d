package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfront/internal/diagfmt"
	"cfront/internal/driver"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.sym>",
	Short: "Run one script and print its namespace listings",
	Long:  `Run a single script file and print the table listings its dump directives produce, followed by any diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "", "diagnostics format (pretty|json; default from cfront.toml)")
	dumpCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runDump исполняет команду "dump": один файл, без кэша, вывод листингов
// таблицы целиком плюс диагностики в выбранном формате.
func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = "pretty"
		if manifest != nil && manifest.Config.Dump.Format != "" {
			format = manifest.Config.Dump.Format
		}
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
	maxDiag, err := maxDiagnostics(cmd, manifest)
	if err != nil {
		return err
	}
	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Run(cmd.Context(), path, driver.Options{
		MaxDiagnostics: maxDiag,
		Logger:         &logger,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if res.Output != "" {
		fmt.Fprint(os.Stdout, res.Output)
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, res.Bag, diagfmt.PrettyOpts{Color: color, ShowNotes: withNotes})
	case "json":
		if err := diagfmt.JSON(os.Stdout, res.Bag, diagfmt.JSONOpts{IncludeNotes: withNotes}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if res.Failed || res.Bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
