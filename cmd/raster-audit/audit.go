package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/gridscan/raster-audit/audit"
	auditdb "github.com/gridscan/raster-audit/audit/db"
	"github.com/gridscan/raster-audit/raster"
	"github.com/gridscan/raster-audit/report"
	"github.com/gridscan/raster-audit/util"

	_ "github.com/lib/pq"
	cli "gopkg.in/urfave/cli.v1"
)

const auditFrequencyEnv = "AUDIT_FREQUENCY"
const defaultAuditFrequency = 24 * time.Hour

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

//auditAction runs the pipeline a single time without scheduling
func auditAction(c *cli.Context) {
	logCtx := &util.BasicLogContext{}

	sourceDir := c.String("source")
	if sourceDir == "" {
		sourceDir = c.Args().First()
	}
	if sourceDir == "" {
		log.Fatal("No source directory. Pass --source, an argument, or set AUDIT_SOURCE_DIR.")
	}

	tables, err := audit.RunBatch(logCtx, raster.Open, sourceDir)
	if err != nil {
		log.Fatal("Audit failed: ", err)
	}

	for _, sink := range buildSinks(c, sourceDir) {
		if err = sink.Store(logCtx, tables); err != nil {
			log.Fatal("Failed to store report tables: ", err)
		}
	}
}

//scheduleAction starts the worker process and an http server
func scheduleAction(c *cli.Context) {
	portStr := getPortStr()

	sourceDir := util.GetSourceDir()
	if sourceDir == "" {
		log.Fatal("No source directory. Set AUDIT_SOURCE_DIR.")
	}

	auditor := audit.NewAuditor(sourceDir, raster.Open, buildSinks(c, sourceDir)...)

	//Create the channel that sends the start/stop messages to the Auditor.
	messageChan := make(chan string, 5) //small buffer.

	//Start the sleep/audit loop.
	go auditor.AuditWhile(messageChan, getTimerDuration())

	//Set up an http router
	router := mux.NewRouter()
	router.HandleFunc("/audit/", func(resp http.ResponseWriter, req *http.Request) {
		handleAuditStatus(auditor, resp, req)
	})
	router.HandleFunc("/audit/start", func(resp http.ResponseWriter, req *http.Request) {
		handleForceStartAudit(auditor, messageChan, resp, req)
	})
	router.HandleFunc("/audit/cancel", func(resp http.ResponseWriter, req *http.Request) {
		handleCancel(auditor, messageChan, resp, req)
	})

	launchServerFunc(portStr, router)
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	log.Println("Listening on port", portStr)
	log.Fatal(http.ListenAndServe(portStr, router))
}

func buildSinks(c *cli.Context, sourceDir string) []audit.Sink {
	reportDir := c.String("out")
	if reportDir == "" {
		reportDir = util.GetReportDir()
	}
	if reportDir == "" {
		reportDir = sourceDir
	}

	sinks := []audit.Sink{report.CSVSink{Dir: reportDir}}
	if c.Bool("store-db") {
		sinks = append(sinks, auditdb.ReportStore{Provider: getDbConnectionFunc})
	}
	return sinks
}

//handleAuditStatus requests the status from the auditor and writes it out.
func handleAuditStatus(auditor *audit.Auditor, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, auditor.GetStatus())
}

//handleForceStartAudit sends a "begin" message to the auditor and returns the new status to the user.
func handleForceStartAudit(auditor *audit.Auditor, messageChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- audit.BeginAuditJobMessage:
		fmt.Fprintln(writer, "Begin job request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting request.")
	}
	fmt.Fprintln(writer, auditor.GetStatus())
}

//handleCancel sends a "cancel" message to the auditor and returns the new status to the user.
func handleCancel(auditor *audit.Auditor, cancelChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case cancelChan <- audit.AbortAuditJobMessage:
		fmt.Fprintln(writer, "Cancel request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting cancel request.")
	}
	fmt.Fprintln(writer, auditor.GetStatus())
}

func getTimerDuration() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(auditFrequencyEnv))

	if duration < time.Minute {
		log.Printf("Specified duration of %v is too small. Setting to default.", duration)
		duration = defaultAuditFrequency
	}

	return duration
}
