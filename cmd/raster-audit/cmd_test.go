package main

import (
	"flag"
	"image"
	"image/color"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/tiff"
	cli "gopkg.in/urfave/cli.v1"

	auditdb "github.com/gridscan/raster-audit/audit/db"
	"github.com/gridscan/raster-audit/report"
	"github.com/gridscan/raster-audit/util"
)

const testStem = "GF1_PMS1_E113.9_N34.4_20151012_L1A0001064469-MSS1"

func writeTestTIFF(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	file, err := os.Create(path)
	assert.NoError(t, err)
	defer file.Close()
	assert.NoError(t, tiff.Encode(file, img, nil))
}

func emptyContext() *cli.Context {
	return cli.NewContext(nil, flag.NewFlagSet("test", flag.ContinueOnError), nil)
}

func TestCreateCliApp(t *testing.T) {
	app := createCliApp()
	assert.Equal(t, "raster-audit", app.Name)

	names := []string{}
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	assert.ElementsMatch(t, []string{"audit", "schedule", "version", "migrate"}, names)
}

func TestSchedule_CallsLaunchServer(t *testing.T) {
	sourceDir := t.TempDir()
	writeTestTIFF(t, filepath.Join(sourceDir, testStem+".tiff"))
	os.Setenv(util.AUDIT_SOURCE_DIR, sourceDir)
	defer os.Unsetenv(util.AUDIT_SOURCE_DIR)

	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	defer func() { launchServerFunc = launchServer }()
	timer := time.NewTimer(1 * time.Second)

	go scheduleAction(emptyContext())

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of schedule()")
	}
}

func TestSchedule_StatusEndpoint(t *testing.T) {
	sourceDir := t.TempDir()
	writeTestTIFF(t, filepath.Join(sourceDir, testStem+".tiff"))
	os.Setenv(util.AUDIT_SOURCE_DIR, sourceDir)
	defer os.Unsetenv(util.AUDIT_SOURCE_DIR)

	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/audit/", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		responseBody, _ := io.ReadAll(response.Result().Body)
		success <- strings.Contains(string(responseBody), "Sleeping until")
	}
	defer func() { launchServerFunc = launchServer }()
	timer := time.NewTimer(1 * time.Second)

	go scheduleAction(emptyContext())

	select {
	case ok := <-success:
		assert.True(t, ok, "status endpoint should report the sleeping schedule")
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of schedule()")
	}
}

func TestBuildSinks_CSVOnly(t *testing.T) {
	sinks := buildSinks(emptyContext(), "/data/source")
	assert.Len(t, sinks, 1)
	csvSink, ok := sinks[0].(report.CSVSink)
	assert.True(t, ok)
	assert.Equal(t, "/data/source", csvSink.Dir, "reports land next to the imagery by default")
}

func TestBuildSinks_ReportDirEnv(t *testing.T) {
	os.Setenv(util.AUDIT_REPORT_DIR, "/data/reports")
	defer os.Unsetenv(util.AUDIT_REPORT_DIR)

	sinks := buildSinks(emptyContext(), "/data/source")
	csvSink := sinks[0].(report.CSVSink)
	assert.Equal(t, "/data/reports", csvSink.Dir)
}

func TestBuildSinks_WithDatabase(t *testing.T) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Bool("store-db", true, "")
	sinks := buildSinks(cli.NewContext(nil, flags, nil), "/data/source")

	assert.Len(t, sinks, 2)
	_, ok := sinks[1].(auditdb.ReportStore)
	assert.True(t, ok)
}

func TestGetTimerDuration(t *testing.T) {
	os.Unsetenv(auditFrequencyEnv)
	assert.Equal(t, defaultAuditFrequency, getTimerDuration())

	os.Setenv(auditFrequencyEnv, "30s")
	assert.Equal(t, defaultAuditFrequency, getTimerDuration(), "sub-minute frequencies fall back to the default")

	os.Setenv(auditFrequencyEnv, "2h")
	assert.Equal(t, 2*time.Hour, getTimerDuration())
	os.Unsetenv(auditFrequencyEnv)
}

func TestGetPortStr(t *testing.T) {
	os.Unsetenv("PORT")
	assert.Equal(t, ":8080", getPortStr())

	os.Setenv("PORT", "9000")
	assert.Equal(t, ":9000", getPortStr())
	os.Unsetenv("PORT")
}
