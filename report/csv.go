package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gridscan/raster-audit/audit"
	"github.com/gridscan/raster-audit/products"
	"github.com/gridscan/raster-audit/util"
)

// Report file names, rewritten on every run
const (
	MessageFileName = "message.csv"
	LackFileName    = "lack.csv"
)

var messageColumns = []string{
	"影像型号", "卫星类型", "影像时相", "传感器类型", "传感器角度", "分辨率",
	"是否能打开", "是否损坏", "光谱是否缺失", "是否存在rpc", "是否存在rpb", "云占比",
}

var lackColumns = []string{
	"影像型号", "缺失传感器类型", "缺失传感器角度", "缺失影像分辨率",
}

// utf8BOM makes spreadsheet tools pick UTF-8 for the CJK headers
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSink writes message.csv and lack.csv into Dir. lack.csv is only
// produced when there are lack rows.
type CSVSink struct {
	Dir string
}

// Store implements audit.Sink
func (s CSVSink) Store(ctx util.LogContext, tables *audit.Tables) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}

	if len(tables.Records) == 0 {
		util.LogAlert(ctx, "No metadata rows to save; not writing "+MessageFileName)
	} else {
		messagePath := filepath.Join(s.Dir, MessageFileName)
		if err := writeCSV(messagePath, messageColumns, messageRows(tables.Records)); err != nil {
			return err
		}
		util.LogInfo(ctx, fmt.Sprintf("Wrote %d metadata rows to %s", len(tables.Records), messagePath))
	}

	if len(tables.Lacks) == 0 {
		util.LogInfo(ctx, "No missing imagery; not writing "+LackFileName)
		return nil
	}
	lackPath := filepath.Join(s.Dir, LackFileName)
	if err := writeCSV(lackPath, lackColumns, lackRows(tables.Lacks)); err != nil {
		return err
	}
	util.LogInfo(ctx, fmt.Sprintf("Wrote %d lack rows to %s", len(tables.Lacks), lackPath))
	return nil
}

func messageRows(records []audit.FullRecord) [][]string {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.Meta.ModelID,
			record.Meta.SatelliteType,
			record.Meta.AcquisitionTime,
			record.Meta.SensorType,
			record.Meta.SensorAngle,
			record.Meta.Resolution,
			strconv.FormatBool(record.Quality.CanOpen),
			strconv.FormatBool(record.Quality.IsCorrupted),
			strconv.FormatBool(record.Quality.IsSpectrumMissing),
			strconv.FormatBool(record.Quality.HasRPC),
			strconv.FormatBool(record.Quality.HasRPB),
			record.CloudCover,
		}
	}
	return rows
}

func lackRows(lacks []products.LackRecord) [][]string {
	rows := make([][]string, len(lacks))
	for i, lack := range lacks {
		rows[i] = []string{lack.ModelID, lack.SensorType, lack.SensorAngle, lack.Resolution}
	}
	return rows
}

func writeCSV(path string, columns []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = file.Write(utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err = writer.Write(columns); err != nil {
		return err
	}
	if err = writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
