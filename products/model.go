package products

import (
	"path/filepath"
	"strings"
)

// Sensor types as they appear in delivery manifests and reports
const (
	SensorPanchromatic  = "全色"
	SensorMultispectral = "多光谱"
	SensorHighRes       = "高分辨"
)

// Viewing angles; AngleNone marks products without viewing geometry
const (
	AngleFore  = "前视"
	AngleNadir = "下视"
	AngleAft   = "后视"
	AngleNone  = "-"
)

// Metadata is the fixed-shape record derived from one product file name.
// Fields stay at their zero/placeholder values when the naming rule for
// the satellite family does not apply.
type Metadata struct {
	ModelID         string
	SatelliteType   string
	AcquisitionTime string
	SensorType      string
	SensorAngle     string
	Resolution      string
}

// Group is one acquisition: every product sharing a satellite family and
// acquisition id. Member order is discovery order.
type Group struct {
	SatelliteType string
	AcquisitionID string
	Names         []string
	Paths         []string
}

// LackRecord reports one required sensor/angle combination with no
// matching product in its acquisition group.
type LackRecord struct {
	ModelID     string
	SensorType  string
	SensorAngle string
	Resolution  string
}

// Stem returns a file name without its directory or extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FamilyTag derives the satellite family used for rule dispatch: the
// first three characters of the stem (e.g. "GF1", "zy3", "SV-", "TH0").
func FamilyTag(stem string) string {
	if len(stem) < 3 {
		return stem
	}
	return stem[:3]
}
