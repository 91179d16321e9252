package audit

import (
	"fmt"
	"time"

	"github.com/gridscan/raster-audit/discovery"
	"github.com/gridscan/raster-audit/products"
	"github.com/gridscan/raster-audit/quality"
	"github.com/gridscan/raster-audit/raster"
	"github.com/gridscan/raster-audit/util"
)

// RunBatch executes the whole pipeline once over sourceDir: discover,
// validate, group, then per group extract metadata, assess quality and
// check completeness. Discovery/validation failures abort the run; a
// failing group is logged and skipped, everything else still reports.
func RunBatch(ctx util.LogContext, open raster.Opener, sourceDir string) (*Tables, error) {
	tables, _, err := runBatchReporting(ctx, open, sourceDir, nil, nil)
	return tables, err
}

func runBatchReporting(ctx util.LogContext, open raster.Opener, sourceDir string, cancelChan <-chan string, statusChan <-chan chan string) (*Tables, *jobStats, error) {
	stats := &jobStats{StartTime: time.Now()}

	paths, err := discovery.Search(ctx, sourceDir)
	if err != nil {
		return nil, stats, err
	}
	valid, err := discovery.Validate(ctx, open, paths)
	if err != nil {
		return nil, stats, err
	}

	groups := products.GroupByAcquisition(ctx, valid)
	tables := &Tables{}

	for _, group := range groups {
		drainStatusChannel(statusChan, stats)
		if drainMessages(cancelChan) {
			util.LogAlert(ctx, "Audit job canceled by user.")
			stats.CanceledByUser = true
			break
		}

		records, lacks, groupErr := processGroup(ctx, open, group, sourceDir)
		if groupErr != nil {
			util.LogAlert(ctx, fmt.Sprintf("Skipping acquisition group containing %s: %v", group.Names[0], groupErr))
			stats.GroupsSkipped++
			continue
		}

		tables.Records = append(tables.Records, records...)
		tables.Lacks = append(tables.Lacks, lacks...)
		stats.GroupsProcessed++
		stats.FilesScanned += len(records)
		for _, record := range records {
			if !record.Quality.CanOpen {
				stats.NumberUnopenable++
			}
			if record.Quality.IsCorrupted {
				stats.NumberCorrupted++
			}
		}
	}

	stats.NumberLackRows = len(tables.Lacks)
	stats.EndTime = time.Now()
	return tables, stats, nil
}

// processGroup assesses every member of one acquisition group and
// derives its lack records. A panic anywhere inside is converted to an
// error so one pathological group cannot take down the batch.
func processGroup(ctx util.LogContext, open raster.Opener, group products.Group, sourceDir string) (records []FullRecord, lacks []products.LackRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	metas := make([]products.Metadata, 0, len(group.Names))
	for i, stem := range group.Names {
		meta := products.ExtractMetadata(ctx, stem, group.SatelliteType)
		qual := quality.Assess(ctx, open, group.Paths[i], sourceDir)
		metas = append(metas, meta)
		records = append(records, FullRecord{Meta: meta, Quality: qual, CloudCover: CloudCoverPlaceholder})
	}

	lacks = products.CheckGroup(metas, group.SatelliteType)
	return records, lacks, nil
}
