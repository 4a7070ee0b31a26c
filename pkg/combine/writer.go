package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const writeBufferSize = 64 * 1024

// QuoteAllWriter writes comma-separated records with every field wrapped in
// double quotes, doubling any quote inside a field. An empty record is
// written as a single empty quoted field so it survives a read back.
type QuoteAllWriter struct {
	dst *bufio.Writer
	err error
}

// NewQuoteAllWriter returns a buffered QuoteAllWriter on w.
func NewQuoteAllWriter(w io.Writer) *QuoteAllWriter {
	return &QuoteAllWriter{dst: bufio.NewWriterSize(w, writeBufferSize)}
}

// Write emits one record terminated by '\n'. After the first error every
// call returns that error.
func (w *QuoteAllWriter) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	if len(record) == 0 {
		record = []string{""}
	}
	for i, field := range record {
		if i > 0 {
			if err := w.dst.WriteByte(','); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(field); err != nil {
			w.err = err
			return err
		}
	}
	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Flush writes buffered data to the underlying writer.
func (w *QuoteAllWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *QuoteAllWriter) writeField(field string) error {
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != '"' {
			continue
		}
		if _, err := w.dst.WriteString(field[start:i]); err != nil {
			return err
		}
		if _, err := w.dst.WriteString(`""`); err != nil {
			return err
		}
		start = i + 1
	}
	if _, err := w.dst.WriteString(field[start:]); err != nil {
		return err
	}
	return w.dst.WriteByte('"')
}

// WriteCombinedFile creates (or truncates) outputPath and writes the header
// followed by every row, all fields quoted.
func WriteCombinedFile(outputPath string, header Header, rows []Row, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing combined content to output file", zap.String("combinedFile", outputPath))

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return newError(KindOutput, "create output", outputPath, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
			err = multierr.Append(err, newError(KindOutput, "close output", outputPath, closeErr))
		}
	}()

	writer := NewQuoteAllWriter(outFile)

	if err := writer.Write(header); err != nil {
		logger.Error("Failed to write header", zap.String("file", outputPath), zap.Error(err))
		return newError(KindOutput, "write header", outputPath, err)
	}

	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			logger.Error("Failed to write row", zap.String("file", outputPath), zap.Int("row", i), zap.Error(err))
			return newError(KindOutput, fmt.Sprintf("write row %d", i), outputPath, err)
		}
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(err))
		return newError(KindOutput, "flush output", outputPath, err)
	}

	return nil
}
