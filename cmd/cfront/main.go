package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cfront/internal/config"
	"cfront/internal/driver"
	"cfront/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cfront",
	Short: "C front-end symbol table toolchain",
	Long:  `cfront runs symbol table scripts through a C89/C99 declaration core and reports diagnostics`,
}

// main регистрирует подкоманды и глобальные флаги, затем исполняет корневую команду.
// Ненулевой код возврата означает ошибку исполнения или диагностики уровня ERROR.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "log internal events to stderr")
	rootCmd.PersistentFlags().Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to cfront.toml (default: walk up from the working directory)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("unknown color value: %s", colorFlag)
}

// setupLogger возвращает zerolog-логгер для --verbose, иначе заглушку.
func setupLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return zerolog.Nop(), err
	}
	if !verbose {
		return zerolog.Nop(), nil
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerminal(os.Stderr)}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel), nil
}

// loadManifest читает cfront.toml: явный путь из --config либо поиск вверх
// от рабочего каталога. Отсутствие файла не является ошибкой.
func loadManifest(cmd *cobra.Command) (*config.Manifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		cfg, err := config.LoadFile(explicit)
		if err != nil {
			return nil, err
		}
		return &config.Manifest{Path: explicit, Config: cfg}, nil
	}
	manifest, ok, err := config.Load(".")
	if err != nil || !ok {
		return nil, err
	}
	return manifest, nil
}

// maxDiagnostics определяет лимит диагностик: флаг выигрывает у конфига.
func maxDiagnostics(cmd *cobra.Command, manifest *config.Manifest) (int, error) {
	flags := cmd.Root().PersistentFlags()
	value, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, err
	}
	if !flags.Changed("max-diagnostics") && manifest != nil && manifest.Config.Diagnostics.Max > 0 {
		return manifest.Config.Diagnostics.Max, nil
	}
	return value, nil
}
