package combine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"csvcombine/pkg/ignore"

	"go.uber.org/zap"
)

// Execute is the entry point for the combine package.
// It combines every matching file under the working directory.
func Execute(args Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if args.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			logger.Error("Failed to resolve working directory", zap.Error(err))
			return nil, newError(KindEnvironment, "resolve working directory", "", err)
		}
		args.Root = wd
	}

	result, err := RunCombine(&args, logger)
	if err != nil {
		return nil, fmt.Errorf("combine execution failed: %w", err)
	}
	return result, nil
}

// OutputFileName returns the name of the combined file for a root directory
// called base: "<base>-combined.<ext>".
func OutputFileName(base, ext string) string {
	return fmt.Sprintf("%s-combined.%s", base, ext)
}

// RunCombine orchestrates the combination process: walk, parse every file in
// visit order, then write the accumulated header and rows.
func RunCombine(args *Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := args.withDefaults()
	startTime := time.Now()

	if err := ValidateExtension(opts.Extension); err != nil {
		logger.Error("Invalid extension", zap.String("extension", opts.Extension), zap.Error(err))
		return nil, newError(KindConfig, "validate extension", "", err)
	}

	root, base, err := resolveRoot(opts.Root)
	if err != nil {
		logger.Error("Failed to resolve root directory", zap.String("directory", opts.Root), zap.Error(err))
		return nil, err
	}
	logger.Info("Starting combination process",
		zap.String("directory", root),
		zap.String("extension", opts.Extension))

	gi, err := ignore.Load(root, opts.GlobalIgnoreFile, logger)
	if err != nil {
		logger.Error("Failed to load ignore patterns", zap.Error(err))
		return nil, newError(KindConfig, "load ignore patterns", root, err)
	}

	files, err := CollectFiles(root, opts.Extension, gi, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No matching files found", zap.String("extension", opts.Extension))
	}

	acc := NewAccumulator()
	result := &Result{Files: make([]FileStats, 0, len(files))}

	for _, file := range files {
		stats, err := ParseFile(file, acc, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to process files: %w", err)
		}
		result.Files = append(result.Files, stats)
		result.Skipped += stats.Skipped
	}

	header, _ := acc.Header()
	result.Header = header
	result.HeaderSource = acc.HeaderSource()
	result.Rows = acc.Len()
	result.OutputPath = filepath.Join(root, OutputFileName(base, opts.Extension))

	if err := WriteCombinedFile(result.OutputPath, header, acc.Rows(), logger); err != nil {
		return nil, fmt.Errorf("failed to write combined file: %w", err)
	}

	if opts.XLSX {
		result.XLSXPath = filepath.Join(root, OutputFileName(base, "xlsx"))
		if err := WriteXLSX(result.XLSXPath, header, acc.Rows(), logger); err != nil {
			return nil, fmt.Errorf("failed to write combined workbook: %w", err)
		}
	}

	logger.Info("Combined file created",
		zap.String("outputFile", result.OutputPath),
		zap.Int("totalFiles", len(result.Files)),
		zap.Int("rows", result.Rows),
		zap.Int("skipped", result.Skipped),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

var errNoName = errors.New("directory has no name")

// resolveRoot returns the absolute root and its base name.
func resolveRoot(dir string) (string, string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", "", newError(KindEnvironment, "resolve directory", dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", "", newError(KindEnvironment, "stat directory", root, err)
	}
	if !info.IsDir() {
		return "", "", newError(KindEnvironment, "stat directory", root, errors.New("not a directory"))
	}

	base := filepath.Base(root)
	if base == "." || base == string(filepath.Separator) || base == filepath.VolumeName(root)+string(filepath.Separator) {
		return "", "", newError(KindEnvironment, "name directory", root, errNoName)
	}
	if !utf8.ValidString(base) {
		return "", "", newError(KindEnvironment, "name directory", root, errors.New("directory name is not valid UTF-8"))
	}
	return root, base, nil
}
