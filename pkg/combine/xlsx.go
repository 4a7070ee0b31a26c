package combine

import (
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// XLSXSheet is the worksheet that receives the combined rows.
const XLSXSheet = "Combined"

// WriteXLSX writes the header and rows to a single-sheet workbook at path.
// Cell values are stored as text, the same way they were read.
func WriteXLSX(path string, header Header, rows []Row, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing combined workbook", zap.String("workbook", path))

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = multierr.Append(err, newError(KindOutput, "close workbook", path, closeErr))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return newError(KindOutput, "create sheet", path, err)
	}

	sw, err := f.NewStreamWriter(XLSXSheet)
	if err != nil {
		return newError(KindOutput, "open sheet", path, err)
	}

	if len(header) > 0 {
		if err := sw.SetRow("A1", cells(header)); err != nil {
			logger.Error("Failed to write header", zap.String("workbook", path), zap.Error(err))
			return newError(KindOutput, "write header", path, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return newError(KindOutput, "address row", path, err)
		}
		if err := sw.SetRow(cell, cells(row)); err != nil {
			logger.Error("Failed to write row", zap.String("workbook", path), zap.Int("row", i), zap.Error(err))
			return newError(KindOutput, "write row", path, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return newError(KindOutput, "flush sheet", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		logger.Error("Failed to save workbook", zap.String("workbook", path), zap.Error(err))
		return newError(KindOutput, "save workbook", path, err)
	}
	return nil
}

func cells(fields []string) []interface{} {
	out := make([]interface{}, len(fields))
	for i, v := range fields {
		out[i] = v
	}
	return out
}
