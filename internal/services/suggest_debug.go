package services

import (
	"log"
	"os"
	"strings"
)

// Two-level logging for the suggestion pipeline. The info level is always on;
// the debug level carries raw model output and per-pair dedup decisions, which
// are far too chatty for production logs, and is gated behind SUGGEST_DEBUG.
var suggestDebugEnabled = false

func init() {
	switch strings.ToLower(os.Getenv("SUGGEST_DEBUG")) {
	case "1", "true", "yes":
		suggestDebugEnabled = true
		log.Println("[SUGGEST] Debug logging: ENABLED")
	}
}

func debugLog(format string, args ...interface{}) {
	if suggestDebugEnabled {
		log.Printf("[SUGGEST DEBUG] "+format, args...)
	}
}

func infoLog(format string, args ...interface{}) {
	log.Printf("[SUGGEST] "+format, args...)
}
