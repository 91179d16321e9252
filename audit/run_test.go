package audit

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/tiff"

	"github.com/gridscan/raster-audit/raster"
)

const (
	gf2PanStem = "GF2_PMS1_E113.9_N34.4_20151012_L1A0001064469-PAN1"
	gf2MssStem = "GF2_PMS1_E113.9_N34.4_20151012_L1A0001064469-MSS1"
)

type mockLogContext struct{}

func (ctx mockLogContext) AppName() string    { return "raster-audit TESTING" }
func (ctx mockLogContext) SessionID() string  { return "test-session" }
func (ctx mockLogContext) LogRootDir() string { return "/tmp" }

// writeTIFF encodes a 16x16 grayscale raster with the given fraction of
// zero pixels.
func writeTIFF(t *testing.T, path string, zeroRatio float64) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	zeros := int(256 * zeroRatio)
	for i := zeros; i < 256; i++ {
		img.SetGray(i%16, i/16, color.Gray{Y: 180})
	}

	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	file, err := os.Create(path)
	assert.NoError(t, err)
	defer file.Close()
	assert.NoError(t, tiff.Encode(file, img, nil))
}

func TestRunBatch_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeTIFF(t, filepath.Join(dir, gf2PanStem+".tiff"), 0)
	writeTIFF(t, filepath.Join(dir, "nested", "zy3_fwd_012345_678901_20230415123456.tif"), 0.5)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, gf2PanStem+".rpc"), []byte("x"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "broken.tif"), []byte("not imagery"), 0644))

	tables, err := RunBatch(mockLogContext{}, raster.Open, dir)
	assert.NoError(t, err)

	// broken.tif fails validation and never reaches the report
	assert.Len(t, tables.Records, 2)

	byModel := map[string]FullRecord{}
	for _, record := range tables.Records {
		byModel[record.Meta.ModelID] = record
	}

	pan := byModel[gf2PanStem]
	assert.Equal(t, "GF2", pan.Meta.SatelliteType)
	assert.Equal(t, "全色", pan.Meta.SensorType)
	assert.Equal(t, "1m", pan.Meta.Resolution)
	assert.True(t, pan.Quality.CanOpen)
	assert.False(t, pan.Quality.IsCorrupted)
	assert.True(t, pan.Quality.HasRPC)
	assert.False(t, pan.Quality.HasRPB)
	assert.Equal(t, CloudCoverPlaceholder, pan.CloudCover)

	zy3 := byModel["zy3_fwd_012345_678901_20230415123456"]
	assert.True(t, zy3.Quality.IsCorrupted, "half the pixels are zero")

	// GF2 pan without its multispectral partner yields one lack row;
	// the lone zy3 fore view yields three more
	lacksByModel := map[string]int{}
	for _, lack := range tables.Lacks {
		lacksByModel[lack.ModelID]++
	}
	assert.Equal(t, 1, lacksByModel[gf2PanStem])
	assert.Equal(t, 3, lacksByModel["zy3_fwd_012345_678901_20230415123456"])
}

func TestRunBatch_CompletePairHasNoLacks(t *testing.T) {
	dir := t.TempDir()
	writeTIFF(t, filepath.Join(dir, gf2PanStem+".tiff"), 0)
	writeTIFF(t, filepath.Join(dir, gf2MssStem+".tiff"), 0)

	tables, err := RunBatch(mockLogContext{}, raster.Open, dir)
	assert.NoError(t, err)
	assert.Len(t, tables.Records, 2)
	assert.Empty(t, tables.Lacks)
}

func TestRunBatch_EmptySourceFails(t *testing.T) {
	_, err := RunBatch(mockLogContext{}, raster.Open, t.TempDir())
	assert.Error(t, err)
}

func TestRunBatchReporting_CancelStopsBeforeWork(t *testing.T) {
	dir := t.TempDir()
	writeTIFF(t, filepath.Join(dir, gf2PanStem+".tiff"), 0)

	cancelChan := make(chan string, 1)
	cancelChan <- AbortAuditJobMessage

	tables, stats, err := runBatchReporting(mockLogContext{}, raster.Open, dir, cancelChan, nil)
	assert.NoError(t, err)
	assert.True(t, stats.CanceledByUser)
	assert.Empty(t, tables.Records)
	assert.Zero(t, stats.GroupsProcessed)
}

func TestRunBatchReporting_PanickingGroupIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTIFF(t, filepath.Join(dir, gf2PanStem+".tiff"), 0)
	writeTIFF(t, filepath.Join(dir, "zy3_nad_012345_678901_20230415123456.tif"), 0)

	// validation sees healthy datasets; assessment panics on one group
	assessed := false
	open := func(path string) raster.Dataset {
		if assessed && filepath.Base(path) == gf2PanStem+".tiff" {
			panic("pathological raster")
		}
		if filepath.Base(path) == gf2PanStem+".tiff" {
			assessed = true
		}
		dataset, err := raster.NewMemoryDataset(16, 16, 1, make([]float64, 256))
		assert.NoError(t, err)
		return dataset
	}

	tables, stats, err := runBatchReporting(mockLogContext{}, open, dir, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.GroupsSkipped)
	assert.Equal(t, 1, stats.GroupsProcessed)
	assert.Len(t, tables.Records, 1)
	assert.Equal(t, "zy3_nad_012345_678901_20230415123456", tables.Records[0].Meta.ModelID)
}

func TestDrainMessages(t *testing.T) {
	assert.False(t, drainMessages(nil))

	messageChan := make(chan string, 3)
	messageChan <- BeginAuditJobMessage
	messageChan <- AbortAuditJobMessage
	messageChan <- "noise"
	assert.True(t, drainMessages(messageChan))

	messageChan <- "noise"
	assert.False(t, drainMessages(messageChan))
}

func TestJobStatsString(t *testing.T) {
	stats := &jobStats{GroupsProcessed: 3, NumberLackRows: 2}
	rendered := stats.String()
	assert.Contains(t, rendered, "#Groups:\t3")
	assert.Contains(t, rendered, "#LackRows:\t2")
}
