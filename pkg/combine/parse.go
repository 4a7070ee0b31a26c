package combine

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile decodes one comma-separated file into acc. The first record is
// the file's header: it becomes the combined header only if acc has none yet,
// otherwise it is discarded. Every later record is appended as a Row.
//
// Malformed records are logged together with the last good record of the
// file and skipped. Failing to open or read the file is returned as a fatal
// *Error.
func ParseFile(path string, acc *Accumulator, logger *zap.Logger) (FileStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stats := FileStats{Path: path}
	name := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open input file", zap.String("filePath", path), zap.Error(err))
		return stats, newError(KindOpen, "open input", path, err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	var lastGood []string
	headerRead := false

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr := classifyReadError(path, err)
			if !readErr.Kind.Recoverable() {
				logger.Error("Failed to read input file", zap.String("filePath", path), zap.Error(err))
				return stats, readErr
			}
			logger.Warn("Skipping malformed record",
				zap.String("file", name),
				zap.String("filePath", path),
				zap.Int("line", recordLine(err)),
				zap.Strings("previousRecord", lastGood),
				zap.Stringer("kind", readErr.Kind),
				zap.Error(readErr.Err))
			stats.Skipped++
			// A malformed first line still counts as this file's header line.
			headerRead = true
			continue
		}

		if !headerRead {
			headerRead = true
			if acc.SetHeader(record, path) {
				stats.CapturedHeader = true
				logger.Debug("Captured header", zap.String("filePath", path), zap.Strings("header", record))
			}
			continue
		}

		lastGood = record
		acc.Append(Row(record))
		stats.Rows++
	}

	logger.Info("Finished with file",
		zap.String("file", name),
		zap.Int("rows", stats.Rows),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}

// classifyReadError maps a csv.Reader error to a KindRecord error when it is
// a decode failure confined to one record, and to KindRead otherwise.
func classifyReadError(path string, err error) *Error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return newError(KindRecord, "decode record", path, err)
	}
	return newError(KindRead, "read input", path, err)
}

func recordLine(err error) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.StartLine
	}
	return 0
}
