package products

import (
	"fmt"
	"strings"

	"github.com/gridscan/raster-audit/util"
)

// idRule slices an acquisition id out of a delimited stem. ok is false
// when the stem is too short for the family's convention.
type idRule func(stem string) (id string, ok bool)

var idRules = map[string]idRule{
	"GF1": productFieldBeforeHyphen,
	"GF2": productFieldBeforeHyphen,
	"GF6": productFieldBeforeHyphen,
	"ZY1": productFieldBeforeHyphen,
	"GF7": lastUnderscoreField,
	"zy3": underscoreFields(2, 3),
	"SV1": underscoreField(2),
	"SV-": underscoreField(2),
	"TH0": lastTwoUnderscoreFields,
}

// productFieldBeforeHyphen takes the stem's last underscore field and
// strips the hyphenated sensor suffix, so the MSS and PAN products of
// one pass share an id (e.g. ..._L1A0001064469-MSS1 -> L1A0001064469).
func productFieldBeforeHyphen(stem string) (string, bool) {
	parts := strings.Split(stem, "_")
	last := parts[len(parts)-1]
	return strings.SplitN(last, "-", 2)[0], true
}

func lastUnderscoreField(stem string) (string, bool) {
	parts := strings.Split(stem, "_")
	return parts[len(parts)-1], true
}

func underscoreField(n int) idRule {
	return func(stem string) (string, bool) {
		parts := strings.Split(stem, "_")
		if n >= len(parts) {
			return "", false
		}
		return parts[n], true
	}
}

func underscoreFields(a, b int) idRule {
	return func(stem string) (string, bool) {
		parts := strings.Split(stem, "_")
		if a >= len(parts) || b >= len(parts) {
			return "", false
		}
		return parts[a] + "_" + parts[b], true
	}
}

func lastTwoUnderscoreFields(stem string) (string, bool) {
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return "", false
	}
	return parts[len(parts)-2] + "_" + parts[len(parts)-1], true
}

// ExtractAcquisitionID applies the family's id rule to a stem. Unknown
// families use the stem itself so every file still lands in a group of
// its own. The second return is false when a known family's rule could
// not be applied; the caller decides how loudly to fall back.
func ExtractAcquisitionID(stem, family string) (string, bool) {
	rule, known := idRules[family]
	if !known {
		return stem, true
	}
	if id, ok := rule(stem); ok {
		return id, true
	}
	return stem, false
}

type groupKey struct {
	family string
	id     string
}

// GroupByAcquisition partitions product paths into acquisition groups
// keyed by (satellite family, acquisition id). Groups come back in
// first-member discovery order; membership is a total partition of the
// input.
func GroupByAcquisition(ctx util.LogContext, paths []string) []Group {
	groups := []Group{}
	byKey := map[groupKey]int{}

	for _, path := range paths {
		stem := Stem(path)
		family := FamilyTag(stem)
		id, ok := ExtractAcquisitionID(stem, family)
		if !ok {
			util.LogAlert(ctx, fmt.Sprintf("File name %s does not match the %s id convention; using the full name as its acquisition id", stem, family))
		}

		key := groupKey{family: family, id: id}
		if i, seen := byKey[key]; seen {
			groups[i].Names = append(groups[i].Names, stem)
			groups[i].Paths = append(groups[i].Paths, path)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, Group{
			SatelliteType: family,
			AcquisitionID: id,
			Names:         []string{stem},
			Paths:         []string{path},
		})
	}

	return groups
}
