package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	gf1MultispectralStem = "GF1_PMS1_E113.9_N34.4_20151012_L1A0001064469-MSS1"
	gf1PanchromaticStem  = "GF1_PMS1_E113.9_N34.4_20151012_L1A0001064469-PAN1"
	gf7AftStem           = "GF7_DLC_E113.9_N34.4_20201101123456_B_0001234"
	zy3NadirStem         = "zy3_nad_012345_678901_20230415123456_L1A"
	th0ForeStem          = "TH01-02_T20230101120000_XYZ_S_1_0123_4567"
	sv1Stem              = "SV1_20160910_HR0123_0456-PAN"
	unknownStem          = "UNKNOWNBIRD_20230101_0001"
	shortStem            = "zy3"
)

type mockLogContext struct{}

func (ctx mockLogContext) AppName() string    { return "raster-audit TESTING" }
func (ctx mockLogContext) SessionID() string  { return "test-session" }
func (ctx mockLogContext) LogRootDir() string { return "/tmp" }

func TestExtractAcquisitionID_Families(t *testing.T) {
	id, ok := ExtractAcquisitionID(gf1MultispectralStem, "GF1")
	assert.True(t, ok)
	assert.Equal(t, "L1A0001064469", id)

	id, ok = ExtractAcquisitionID(gf1PanchromaticStem, "GF1")
	assert.True(t, ok)
	assert.Equal(t, "L1A0001064469", id, "MSS and PAN of one pass must share an id")

	id, ok = ExtractAcquisitionID(gf7AftStem, "GF7")
	assert.True(t, ok)
	assert.Equal(t, "0001234", id)

	id, ok = ExtractAcquisitionID(zy3NadirStem, "zy3")
	assert.True(t, ok)
	assert.Equal(t, "012345_678901", id)

	id, ok = ExtractAcquisitionID(th0ForeStem, "TH0")
	assert.True(t, ok)
	assert.Equal(t, "0123_4567", id)

	id, ok = ExtractAcquisitionID(sv1Stem, "SV1")
	assert.True(t, ok)
	assert.Equal(t, "HR0123", id)
}

func TestExtractAcquisitionID_UnknownFamily(t *testing.T) {
	id, ok := ExtractAcquisitionID(unknownStem, "UNK")
	assert.True(t, ok)
	assert.Equal(t, unknownStem, id, "unknown families use the full stem")
}

func TestExtractAcquisitionID_MalformedFallsBack(t *testing.T) {
	id, ok := ExtractAcquisitionID(shortStem, "zy3")
	assert.False(t, ok, "a malformed name must be reported as a fallback")
	assert.Equal(t, shortStem, id)
}

func TestExtractAcquisitionID_Deterministic(t *testing.T) {
	first, _ := ExtractAcquisitionID(th0ForeStem, "TH0")
	second, _ := ExtractAcquisitionID(th0ForeStem, "TH0")
	assert.Equal(t, first, second)
}

func TestGroupByAcquisition_PairsOnePass(t *testing.T) {
	paths := []string{
		"/data/" + gf1MultispectralStem + ".tiff",
		"/data/" + gf1PanchromaticStem + ".tiff",
	}

	groups := GroupByAcquisition(mockLogContext{}, paths)
	assert.Len(t, groups, 1)
	assert.Equal(t, "GF1", groups[0].SatelliteType)
	assert.Equal(t, "L1A0001064469", groups[0].AcquisitionID)
	assert.Equal(t, []string{gf1MultispectralStem, gf1PanchromaticStem}, groups[0].Names)
}

func TestGroupByAcquisition_TotalPartition(t *testing.T) {
	paths := []string{
		"/data/" + gf1MultispectralStem + ".tiff",
		"/data/nested/" + gf7AftStem + ".tif",
		"/data/" + zy3NadirStem + ".tif",
		"/data/" + unknownStem + ".tif",
		"/data/" + gf1PanchromaticStem + ".tiff",
	}

	groups := GroupByAcquisition(mockLogContext{}, paths)

	total := 0
	seen := map[string]bool{}
	for _, group := range groups {
		total += len(group.Paths)
		for _, path := range group.Paths {
			assert.False(t, seen[path], "path %s appears in two groups", path)
			seen[path] = true
		}
	}
	assert.Equal(t, len(paths), total, "every input path belongs to exactly one group")
	assert.Len(t, groups, 4)
}

func TestGroupByAcquisition_UnknownTypeIsSingleton(t *testing.T) {
	groups := GroupByAcquisition(mockLogContext{}, []string{"/data/" + unknownStem + ".tif"})
	assert.Len(t, groups, 1)
	assert.Equal(t, unknownStem, groups[0].AcquisitionID)
}

func TestFamilyTag(t *testing.T) {
	assert.Equal(t, "GF1", FamilyTag(gf1MultispectralStem))
	assert.Equal(t, "zy3", FamilyTag(zy3NadirStem))
	assert.Equal(t, "SV-", FamilyTag("SV-2_20160910_HR0123_0456-MUX"))
	assert.Equal(t, "ab", FamilyTag("ab"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, gf1MultispectralStem, Stem("/data/nested/"+gf1MultispectralStem+".tiff"))
	assert.Equal(t, "X_rpc", Stem("/data/X_rpc.txt"))
}
