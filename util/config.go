package util

import (
	"os"
)

// Environment variables
const (
	AUDIT_SOURCE_DIR = "AUDIT_SOURCE_DIR"
	AUDIT_REPORT_DIR = "AUDIT_REPORT_DIR"
)

// GetSourceDir returns a string for the AUDIT_SOURCE_DIR environment variable
func GetSourceDir() string {
	sourceDir, ok := os.LookupEnv(AUDIT_SOURCE_DIR)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get a source directory from the environment.")
	}
	return sourceDir
}

// GetReportDir returns a string for the AUDIT_REPORT_DIR environment
// variable; empty when unset, and callers pick their own fallback
func GetReportDir() string {
	return os.Getenv(AUDIT_REPORT_DIR)
}
