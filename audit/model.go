package audit

import (
	"fmt"
	"time"

	"github.com/gridscan/raster-audit/products"
	"github.com/gridscan/raster-audit/quality"
	"github.com/gridscan/raster-audit/util"
)

// FullRecord is one row of the metadata report: naming-derived metadata
// plus structural quality for a single product file. CloudCover is a
// placeholder column; content analysis is out of scope.
type FullRecord struct {
	Meta       products.Metadata
	Quality    quality.Record
	CloudCover string
}

// CloudCoverPlaceholder fills the cloud column until a detector exists
const CloudCoverPlaceholder = "-"

// Tables holds both result tables of one batch run
type Tables struct {
	Records []FullRecord
	Lacks   []products.LackRecord
}

// Sink persists the two result tables. Implementations overwrite
// whatever a previous run produced.
type Sink interface {
	Store(ctx util.LogContext, tables *Tables) error
}

type jobStats struct {
	GroupsProcessed  int
	GroupsSkipped    int
	FilesScanned     int
	NumberUnopenable int
	NumberCorrupted  int
	NumberLackRows   int
	StartTime        time.Time
	EndTime          time.Time
	CanceledByUser   bool
}

func (stats *jobStats) String() string {
	return fmt.Sprintf(`
		Start:	%v
		End:	%v
		Canceled: %v
		#Groups:	%v
		#Skipped:	%v
		#Files:		%v
		#Unopenable:	%v
		#Corrupted:	%v
		#LackRows:	%v
		`,
		stats.StartTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.EndTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.CanceledByUser,
		stats.GroupsProcessed,
		stats.GroupsSkipped,
		stats.FilesScanned,
		stats.NumberUnopenable,
		stats.NumberCorrupted,
		stats.NumberLackRows)
}
