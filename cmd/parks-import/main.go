package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-parks/cmd/parks-import/internal/bootstrap"
	parkscmd "github.com/goliatone/go-parks/internal/commands/parks"
	"github.com/goliatone/go-parks/internal/importer"
	"github.com/goliatone/go-parks/internal/runtimeconfig"
	"github.com/joho/godotenv"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		log.Fatalf("parks import: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup func(string) (string, bool)) error {
	defaults := runtimeconfig.DefaultConfig()

	flags := flag.NewFlagSet("parks-import", flag.ContinueOnError)
	flags.SetOutput(stderr)
	contentDir := flags.String("content-dir", defaults.Markdown.ContentDir, "Directory holding the park guide markdown files")
	file := flags.String("file", "", "Import a single markdown file instead of a directory")
	pattern := flags.String("pattern", defaults.Markdown.Pattern, "Glob pattern applied when discovering files")
	recursive := flags.Bool("recursive", defaults.Markdown.Recursive, "Descend into sub-directories")
	dsn := flags.String("db", defaults.Storage.DSN, "Database file (sqlite) or connection URL (postgres)")
	driver := flags.String("driver", defaults.Storage.Driver, "Database driver: sqlite or postgres")
	logDir := flags.String("log-dir", defaults.Logging.Dir, "Directory for the log file")
	logFile := flags.String("log-file", defaults.Logging.File, "Log file name, truncated on every run")
	logLevel := flags.String("log-level", defaults.Logging.Level, "Minimum log level")
	logFormat := flags.String("log-format", defaults.Logging.Format, "Terminal format: compact|full (console) or json|console|pretty (gologger)")
	logProvider := flags.String("log-provider", defaults.Logging.Provider, "Terminal logger: console (writes to stderr) or gologger (writes to go-logger's own output)")
	dryRun := flags.Bool("dry-run", false, "Extract and validate without writing to the database")
	envFile := flags.String("env-file", ".env", "Optional dotenv file with PARKS_* settings")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := loadEnvFile(*envFile, isFlagSet(flags, "env-file")); err != nil {
		return err
	}

	cfg := defaults
	if err := cfg.ApplyEnv(lookup); err != nil {
		return err
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "content-dir":
			cfg.Markdown.ContentDir = *contentDir
		case "pattern":
			cfg.Markdown.Pattern = *pattern
		case "recursive":
			cfg.Markdown.Recursive = *recursive
		case "db":
			cfg.Storage.DSN = *dsn
		case "driver":
			cfg.Storage.Driver = *driver
		case "log-dir":
			cfg.Logging.Dir = *logDir
		case "log-file":
			cfg.Logging.File = *logFile
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		case "log-provider":
			cfg.Logging.Provider = *logProvider
		case "dry-run":
			cfg.DryRun = *dryRun
		}
	})

	module, err := moduleBuilder(ctx, bootstrap.Options{Config: cfg, Terminal: stderr})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer module.Close()

	var summary *importer.Summary
	var fileResult *importer.FileResult
	handlers, err := parkscmd.RegisterParkCommands(nil, module.Service, module.Provider,
		parkscmd.WithSummarySink(func(s *importer.Summary) { summary = s }),
		parkscmd.WithFileResultSink(func(r importer.FileResult) { fileResult = &r }),
	)
	if err != nil {
		return err
	}

	if strings.TrimSpace(*file) != "" {
		err = handlers.ImportFile.Execute(ctx, parkscmd.ImportFileCommand{Path: *file})
		if fileResult != nil {
			printFileResult(stdout, *fileResult)
		}
	} else {
		err = handlers.ImportDirectory.Execute(ctx, parkscmd.ImportDirectoryCommand{
			Directory: cfg.Markdown.ContentDir,
			DryRun:    cfg.DryRun,
		})
		if summary != nil && err == nil {
			printSummary(stdout, summary)
		}
	}
	fmt.Fprintf(stdout, "Log file: %s\n", module.LogPath)
	return err
}

// loadEnvFile loads dotenv values without overriding the real environment.
// A missing default file is fine; a missing explicit one is not.
func loadEnvFile(path string, explicit bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func isFlagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printSummary(w io.Writer, summary *importer.Summary) {
	mode := ""
	if summary.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(w, "Processed %d files from %s%s: %d imported, %d skipped, %d failed in %s\n",
		summary.Attempted, summary.Directory, mode,
		summary.Succeeded, summary.Skipped, summary.Failed,
		summary.Duration.Round(time.Millisecond),
	)
	for _, result := range summary.Files {
		if result.Status == importer.StatusImported {
			continue
		}
		fmt.Fprintf(w, "  %s %s: %v\n", result.Status, result.Path, result.Error)
	}
}

func printFileResult(w io.Writer, result importer.FileResult) {
	if result.Status == importer.StatusImported {
		fmt.Fprintf(w, "%s %s (%s)\n", result.Status, result.Path, result.Park)
		return
	}
	fmt.Fprintf(w, "%s %s: %v\n", result.Status, result.Path, result.Error)
}
