package products

import (
	"fmt"
	"strings"

	"github.com/gridscan/raster-audit/util"
)

type sensorAttrs struct {
	sensorType string
	angle      string
	resolution string
}

type codeSource int

const (
	// the one-character sensor code sits at the front of the stem's
	// last hyphen-delimited token
	codeFromLastHyphenToken codeSource = iota
	// the code sits at the front of a fixed underscore field
	codeFromUnderscoreField
)

// namingRule captures one satellite family's file naming convention.
// Conventions differ in where the acquisition time lives, where the
// sensor code lives, and whether a separate angle digit participates.
type namingRule struct {
	timeField int // underscore field holding the acquisition time
	timeStart int // substring start within that field
	timeLen   int // substring length; 0 keeps the whole field
	source    codeSource
	codeField int // underscore field for codeFromUnderscoreField
	// underscore field holding an explicit angle digit, joined to the
	// sensor code for lookup; -1 when the family has none
	angleField int
	codes      map[string]sensorAttrs
}

var namingRules = map[string]namingRule{
	"GF1": {
		timeField: 4, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "8m"},
			"P": {SensorPanchromatic, AngleNone, "2m"},
		},
	},
	"GF2": {
		timeField: 4, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "4m"},
			"P": {SensorPanchromatic, AngleNone, "1m"},
		},
	},
	"GF6": {
		timeField: 4, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "8m"},
			"P": {SensorPanchromatic, AngleNone, "2m"},
		},
	},
	"GF7": {
		timeField: 4, timeLen: 8, source: codeFromUnderscoreField, codeField: 5, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleAft, "3.2m"},
			"B": {SensorPanchromatic, AngleAft, "0.8m"},
			"F": {SensorPanchromatic, AngleFore, "0.8m"},
		},
	},
	"zy3": {
		timeField: 4, timeLen: 8, source: codeFromUnderscoreField, codeField: 1, angleField: -1,
		codes: map[string]sensorAttrs{
			"b": {SensorPanchromatic, AngleAft, "3m"},
			"f": {SensorPanchromatic, AngleFore, "3m"},
			"n": {SensorPanchromatic, AngleNadir, "2m"},
			"m": {SensorMultispectral, AngleNadir, "8m"},
		},
	},
	"ZY1": {
		timeField: 4, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "10m"},
			"P": {SensorPanchromatic, AngleNone, "2.5m"},
		},
	},
	"SV1": {
		timeField: 1, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "2m"},
			"P": {SensorPanchromatic, AngleNone, "0.5m"},
		},
	},
	"SV-": {
		timeField: 1, source: codeFromLastHyphenToken, angleField: -1,
		codes: map[string]sensorAttrs{
			"M": {SensorMultispectral, AngleNone, "2m"},
			"P": {SensorPanchromatic, AngleNone, "0.5m"},
		},
	},
	"TH0": {
		// e.g. TH01-03_T20230101..._..._S_2: time is inside the second
		// field behind a leading letter, angle digit is its own field
		timeField: 1, timeStart: 1, timeLen: 8, source: codeFromUnderscoreField, codeField: 3, angleField: 4,
		codes: map[string]sensorAttrs{
			"S1": {SensorPanchromatic, AngleFore, "5m"},
			"S2": {SensorPanchromatic, AngleNadir, "5m"},
			"S3": {SensorPanchromatic, AngleAft, "5m"},
			"G":  {SensorHighRes, AngleNadir, "2m"},
			"D":  {SensorMultispectral, AngleNadir, "8m"},
		},
	},
}

// ExtractMetadata derives a Metadata record from one stem, dispatching
// on the satellite family. Malformed names degrade to a partially empty
// record with a warning; they never fail the pipeline.
func ExtractMetadata(ctx util.LogContext, stem, family string) Metadata {
	meta := Metadata{
		ModelID:       stem,
		SatelliteType: strings.SplitN(stem, "_", 2)[0],
		SensorAngle:   AngleNone,
	}

	rule, known := namingRules[family]
	if !known {
		return meta
	}

	parts := strings.Split(stem, "_")
	if rule.timeField >= len(parts) {
		logMalformed(ctx, stem)
		return meta
	}
	meta.AcquisitionTime = sliceField(parts[rule.timeField], rule.timeStart, rule.timeLen)

	code, ok := sensorCode(rule, stem, parts)
	if !ok {
		logMalformed(ctx, stem)
		return meta
	}

	if rule.angleField >= 0 {
		if rule.angleField >= len(parts) {
			logMalformed(ctx, stem)
			return meta
		}
		if attrs, hit := rule.codes[code+parts[rule.angleField]]; hit {
			return meta.withAttrs(attrs)
		}
	}
	if attrs, hit := rule.codes[code]; hit {
		return meta.withAttrs(attrs)
	}
	return meta
}

func (m Metadata) withAttrs(attrs sensorAttrs) Metadata {
	m.SensorType = attrs.sensorType
	m.SensorAngle = attrs.angle
	m.Resolution = attrs.resolution
	return m
}

func sensorCode(rule namingRule, stem string, parts []string) (string, bool) {
	var field string
	switch rule.source {
	case codeFromLastHyphenToken:
		hyphenParts := strings.Split(stem, "-")
		field = hyphenParts[len(hyphenParts)-1]
	case codeFromUnderscoreField:
		if rule.codeField >= len(parts) {
			return "", false
		}
		field = parts[rule.codeField]
	}
	if field == "" {
		return "", false
	}
	return field[:1], true
}

// sliceField clamps like a slice expression: a too-short field yields
// whatever characters are available rather than an error.
func sliceField(field string, start, length int) string {
	if length == 0 {
		return field
	}
	if start >= len(field) {
		return ""
	}
	end := start + length
	if end > len(field) {
		end = len(field)
	}
	return field[start:end]
}

func logMalformed(ctx util.LogContext, stem string) {
	util.LogAlert(ctx, fmt.Sprintf("File name %s is shorter than its naming convention expects; metadata is partially empty", stem))
}
