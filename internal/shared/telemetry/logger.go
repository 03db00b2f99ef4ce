// Package telemetry emits structured JSON log lines to stdout, one event per
// line, for collection by the surrounding platform.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info logs an informational event.
func Info(msg string, fields map[string]any) { write("info", msg, fields) }

// Warn logs a recoverable problem.
func Warn(msg string, fields map[string]any) { write("warn", msg, fields) }

// Error logs a failure.
func Error(msg string, fields map[string]any) { write("error", msg, fields) }

func write(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":%q,"level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	os.Stdout.Write(append(data, '\n'))
}
