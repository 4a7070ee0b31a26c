// File: pkg/combine/traversal.go
package combine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"csvcombine/pkg/ignore"

	"go.uber.org/zap"
)

// CollectFiles walks root recursively and returns the regular files whose
// extension equals ext, in the order filepath.WalkDir visits them (lexical
// within each directory). Entries that cannot be read are logged and skipped.
// Paths matched by gi are excluded; ignored directories are not descended.
func CollectFiles(root, ext string, gi *ignore.Matcher, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var files []string
	logger.Debug("Starting file traversal", zap.String("root", root), zap.String("extension", ext))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			walkErr := newError(KindWalk, "read entry", path, err)
			if !walkErr.Kind.Recoverable() {
				return walkErr
			}
			logSkipped(logger, walkErr)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != root && gi.MatchesPath(relPath+"/") {
				logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if extension(d.Name()) != ext {
			return nil
		}

		regular, statErr := isRegularFile(path, d)
		if statErr != nil {
			statWalkErr := newError(KindWalk, "stat entry", path, statErr)
			if !statWalkErr.Kind.Recoverable() {
				return statWalkErr
			}
			logSkipped(logger, statWalkErr)
			return nil
		}
		if !regular {
			return nil
		}

		if gi.MatchesPath(relPath) {
			logger.Debug("Skipping ignored file", zap.String("filePath", path))
			return nil
		}

		files = append(files, path)
		logger.Debug("Added file to processing list", zap.String("filePath", path))
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return files, newError(KindWalk, "walk", root, err)
	}

	logger.Debug("Completed file traversal", zap.Int("files", len(files)))
	return files, nil
}

// extension returns the text after the last dot of name. Dot files without
// a further dot (".csv") have no extension.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// isRegularFile reports whether the entry is a regular file, following a
// symlink to its target.
func isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func logSkipped(logger *zap.Logger, err *Error) {
	logger.Warn("Skipping unreadable entry",
		zap.String("path", err.Path),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err))
}
