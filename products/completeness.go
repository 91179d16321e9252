package products

// requirement is one sensor/angle combination a family's acquisition
// must contain. An empty sensorAngle matches any angle. reportAngle is
// the label written when the combination is absent; it is usually the
// same as sensorAngle but the tables keep a few historical labels.
type requirement struct {
	sensorType  string
	sensorAngle string
	reportAngle string
	resolution  string
}

var requiredSets = map[string][]requirement{
	"GF1": {
		{SensorPanchromatic, "", AngleNone, "2m"},
		{SensorMultispectral, "", AngleNone, "8m"},
	},
	"GF2": {
		{SensorPanchromatic, "", AngleNone, "1m"},
		{SensorMultispectral, "", AngleNone, "4m"},
	},
	"GF6": {
		{SensorPanchromatic, "", AngleNone, "2m"},
		{SensorMultispectral, "", AngleNone, "8m"},
	},
	"GF7": {
		{SensorPanchromatic, AngleAft, AngleAft, "0.8m"},
		{SensorPanchromatic, AngleFore, AngleFore, "0.8m"},
		{SensorMultispectral, "", AngleAft, "3.2m"},
	},
	"zy3": {
		{SensorPanchromatic, AngleAft, AngleAft, "3m"},
		{SensorPanchromatic, AngleFore, AngleFore, "3m"},
		// the missing-nadir row has always carried the fore label;
		// downstream reports key on it, so it stays
		{SensorPanchromatic, AngleNadir, AngleFore, "2m"},
		{SensorMultispectral, "", AngleNadir, "8m"},
	},
	"ZY1": {
		{SensorPanchromatic, "", AngleNone, "2.5m"},
		{SensorMultispectral, "", AngleNone, "10m"},
	},
	"SV1": {
		{SensorPanchromatic, "", AngleNone, "0.5m"},
		{SensorMultispectral, "", AngleNone, "2m"},
	},
	"SV-": {
		{SensorPanchromatic, "", AngleNone, "0.5m"},
		{SensorMultispectral, "", AngleNone, "2m"},
	},
	"TH0": {
		{SensorPanchromatic, AngleFore, AngleFore, "5m"},
		{SensorPanchromatic, AngleNadir, AngleNadir, "5m"},
		{SensorPanchromatic, AngleAft, AngleAft, "5m"},
		{SensorMultispectral, "", AngleNadir, "8m"},
		{SensorHighRes, "", AngleNadir, "2m"},
	},
}

// CheckGroup compares one acquisition group's metadata against the
// family's required sensor/angle combinations and returns a LackRecord
// for each combination with no matching product. Families without a
// required set, and empty groups, yield nothing.
func CheckGroup(records []Metadata, family string) []LackRecord {
	if len(records) == 0 {
		return nil
	}
	requirements, known := requiredSets[family]
	if !known {
		return nil
	}

	lacks := []LackRecord{}
	for _, req := range requirements {
		if observed(records, req) {
			continue
		}
		lacks = append(lacks, LackRecord{
			ModelID:     records[0].ModelID,
			SensorType:  req.sensorType,
			SensorAngle: req.reportAngle,
			Resolution:  req.resolution,
		})
	}
	return lacks
}

func observed(records []Metadata, req requirement) bool {
	for _, record := range records {
		if record.SensorType != req.sensorType {
			continue
		}
		if req.sensorAngle == "" || record.SensorAngle == req.sensorAngle {
			return true
		}
	}
	return false
}
