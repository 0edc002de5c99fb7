package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"go.uber.org/zap"

	"github.com/jacoelho/jsonschema"
	schemaerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/format"
	"github.com/jacoelho/jsonschema/internal/xiter"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", "", "path to JSON or YAML schema file")
	validateFormats := fs.Bool("formats", false, "assert the format keyword")
	strictFormats := fs.Bool("strict-formats", false, "fail on unknown formats (implies --formats)")
	jobs := fs.Int("jobs", 0, "documents validated concurrently (0 uses GOMAXPROCS)")
	logLevel := fs.String("log-level", "INFO", "log level: DEBUG, INFO, WARN or ERROR")
	cpuProfilePath := fs.String("cpuprofile", "", "write CPU profile to file")
	memProfilePath := fs.String("memprofile", "", "write memory profile to file")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s --schema <schema.json> <document.json>...\n\n", os.Args[0]),
			writeln(stderr, "Validates JSON or YAML documents against a JSON Schema."),
			writeln(stderr),
			writef(stderr, "Built-in formats: %s\n\n", strings.Join(xiter.Collect(format.Default().Names()), ", ")),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *schemaPath == "" {
		return usageError(stderr, fs, &usageErr, "error: --schema is required")
	}
	docs := fs.Args()
	if len(docs) == 0 {
		return usageError(stderr, fs, &usageErr, "error: at least one document argument is required")
	}
	level, ok := levelFromString(*logLevel)
	if !ok {
		return usageError(stderr, fs, &usageErr, fmt.Sprintf("error: unknown log level %q", *logLevel))
	}
	logger := newLogger(stderr, level)
	defer func() { _ = logger.Sync() }()

	if *cpuProfilePath != "" {
		stopCPUProfile, err := startCPUProfile(*cpuProfilePath)
		if err != nil {
			logger.Error("starting CPU profile", zap.Error(err))
			return 1
		}
		defer func() {
			if err := stopCPUProfile(); err != nil {
				logger.Error("stopping CPU profile", zap.Error(err))
			}
		}()
	}

	if *memProfilePath != "" {
		defer func() {
			if err := writeMemProfile(*memProfilePath); err != nil {
				logger.Error("writing memory profile", zap.Error(err))
			}
		}()
	}

	opts := jsonschema.NewOptions().
		WithValidateFormats(*validateFormats || *strictFormats).
		WithIgnoreUnknownFormats(!*strictFormats).
		WithLogger(logger)
	schema, err := jsonschema.LoadFile(*schemaPath, opts)
	if err != nil {
		logger.Error("loading schema", zap.String("schema", *schemaPath), zap.Error(err))
		return 1
	}
	logger.Debug("schema loaded", zap.String("schema", *schemaPath), zap.Int("documents", len(docs)))

	reports, err := validateFiles(context.Background(), schema, docs, *jobs)
	if err != nil {
		logger.Error("validating", zap.Error(err))
		return 1
	}

	status := 0
	for i, doc := range docs {
		r := reports[i]
		if r.err != nil {
			status = 1
			if violations, ok := schemaerrors.AsValidations(r.err); ok {
				for _, v := range violations {
					if writeErr := writeln(stderr, v.Error()); writeErr != nil {
						return 1
					}
				}
				if writeErr := writef(stderr, "%s fails to validate\n", doc); writeErr != nil {
					return 1
				}
				continue
			}
			logger.Error("reading document", zap.String("document", doc), zap.Error(r.err))
			continue
		}
		if !r.report.OK() {
			status = 1
			for v := range r.report.Errors() {
				if writeErr := writeln(stderr, v.Error()); writeErr != nil {
					return 1
				}
			}
			if writeErr := writef(stderr, "%s fails to validate\n", doc); writeErr != nil {
				return 1
			}
			continue
		}
		if err := writef(stdout, "%s validates\n", doc); err != nil {
			return 1
		}
	}
	return status
}

type fileResult struct {
	report *jsonschema.Report
	err    error
}

// validateFiles validates every document, keeping results in argument order.
func validateFiles(ctx context.Context, schema *jsonschema.Schema, paths []string, jobs int) ([]fileResult, error) {
	results := make([]fileResult, len(paths))
	instances := make([]any, 0, len(paths))
	index := make([]int, 0, len(paths))
	for i, path := range paths {
		instance, err := readInstance(path)
		if err != nil {
			results[i].err = err
			continue
		}
		instances = append(instances, instance)
		index = append(index, i)
	}

	reports, err := schema.ValidateAll(ctx, instances, jobs)
	if err != nil {
		return nil, err
	}
	for j, report := range reports {
		results[index[j]].report = report
	}
	return results, nil
}

func usageError(stderr io.Writer, fs *flag.FlagSet, usageErr *error, msg string) int {
	if err := writeln(stderr, msg); err != nil {
		return 1
	}
	fs.Usage()
	if *usageErr != nil {
		return 1
	}
	return 2
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
