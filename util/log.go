package util

import (
	"fmt"
	"log"
)

// Severity levels, syslog-style
const (
	FATAL   = 2
	ERROR   = 3
	WARNING = 4
	NOTICE  = 5
	INFO    = 6
	DEBUG   = 7
)

// LogContext is the context for a structured log message
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for code that has no richer one
type BasicLogContext struct {
	sessionID string
}

// AppName returns an empty string
func (c *BasicLogContext) AppName() string {
	return ""
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// LogAuditInput is the set of fields for an audit-style log message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity int
}

func logMessage(ctx LogContext, severity int, message string) {
	prefix := ctx.AppName()
	if prefix != "" {
		prefix = prefix + " "
	}
	log.Printf("[%s%s] <%d> %s", prefix, ctx.SessionID(), severity, message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	logMessage(ctx, INFO, message)
}

// LogAlert logs a message that somebody should probably look at
func LogAlert(ctx LogContext, message string) {
	logMessage(ctx, WARNING, message)
}

// LogSimpleErr logs a message and its causing error, and returns an
// error wrapping both for the caller to propagate
func LogSimpleErr(ctx LogContext, message string, err error) error {
	wrapped := fmt.Errorf("%s%v", message, err)
	logMessage(ctx, ERROR, wrapped.Error())
	return wrapped
}

// LogAudit logs a who-did-what-to-whom message
func LogAudit(ctx LogContext, input LogAuditInput) {
	logMessage(ctx, input.Severity,
		fmt.Sprintf("actor=%s action=%s actee=%s %s", input.Actor, input.Action, input.Actee, input.Message))
}
