package audit

import (
	"fmt"
	"log"
	"time"

	"github.com/gridscan/raster-audit/raster"
	"github.com/gridscan/raster-audit/util"
)

// BeginAuditJobMessage is sent on a channel to start an audit job.
const BeginAuditJobMessage = "start"

// AbortAuditJobMessage is sent on a channel to stop an in-progress job.
const AbortAuditJobMessage = "stop"

// Auditor manages the state for a recurring audit job over one imagery
// directory. Mainly useful when launching the job on an interval.
type Auditor struct {
	sourceDir  string
	open       raster.Opener
	sinks      []Sink
	statusChan chan chan string
}

// NewAuditor initializes a new auditor.
func NewAuditor(sourceDir string, open raster.Opener, sinks ...Sink) *Auditor {
	return &Auditor{
		sourceDir:  sourceDir,
		open:       open,
		sinks:      sinks,
		statusChan: make(chan chan string, 10)}
}

// AuditWhile performs the Audit() task on a schedule and waits for a channel.
// Note: this is blocking
// The function will exit when messageChan is closed and any in-progress jobs complete.
// To close quickly, send AbortAuditJobMessage on messageChan before closing it.
func (a *Auditor) AuditWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	log.Println("Job loop started with frequency", maxTimeBetweenJobs)

	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	var startJob bool
	for {
		startJob = false

		//Wait for a start message, a timer pop, or a status request.
		select {
		case <-scheduleTimer.C:
			log.Println("Maximum time between jobs elapsed.")
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginAuditJobMessage:
				log.Println("User requested job start.")
				startJob = true
			default:
				//ignore this message. We only want ones for "begin".
			}
		case respChan := <-a.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default:
				//Could not send immediately. We'll ignore it.
			}
		}

		if startJob {
			log.Println("Starting job.")
			previousStatus = a.Audit(messageChan)

			scheduleTimer.Stop()
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C: //good, discard
				default:
					break TimerDrainLoop
				}
			}
			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

// GetStatus is a thread safe way to get information about the audit operation.
func (a *Auditor) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer, status responses never block.
	a.statusChan <- responseChan
	status := <-responseChan
	return status
}

// Audit performs one batch run and pushes the tables to every sink.
func (a *Auditor) Audit(messageChan <-chan string) (result string) {
	ctx := &util.BasicLogContext{}

	tables, stats, err := runBatchReporting(ctx, a.open, a.sourceDir, messageChan, a.statusChan)
	if err != nil {
		util.LogSimpleErr(ctx, "Audit run failed: ", err)
		return fmt.Sprintf("Failed: %v", err)
	}

	for _, sink := range a.sinks {
		if storeErr := sink.Store(ctx, tables); storeErr != nil {
			util.LogSimpleErr(ctx, "Failed to store report tables: ", storeErr)
		}
	}

	log.Printf("Audit complete: %v", stats.String())
	log.Printf("Audit took %s", stats.EndTime.Sub(stats.StartTime))
	return stats.String()
}

// drainStatusChannel answers every waiting status request with an
// in-progress snapshot.
func drainStatusChannel(statusChan <-chan chan string, stats *jobStats) {
	if statusChan == nil {
		return
	}
	for {
		select {
		case resp := <-statusChan:
			if resp != nil {
				select {
				case resp <- fmt.Sprintf("%v\nIn progress\n%v", time.Now().Format("Mon Jan _2 15:04:05 2006"), stats.String()): //good
				default: //can't send. ignore this request.
				}
			}
		default:
			return
		}
	}
}

// drainMessages reads everything waiting on the channel, looking for an
// abort. All other messages are discarded.
func drainMessages(messageChan <-chan string) (abortRequested bool) {
	if messageChan == nil {
		return false
	}
	for {
		select {
		case msg := <-messageChan:
			abortRequested = abortRequested || (msg == AbortAuditJobMessage)
		default:
			return
		}
	}
}
