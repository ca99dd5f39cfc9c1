package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JSONFormatter formats log entries as JSON.
type JSONFormatter struct {
	TimestampFormat string
}

// Format formats the entry as JSON.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := time.RFC3339
	if f.TimestampFormat != "" {
		tsFormat = f.TimestampFormat
	}

	data := make(map[string]interface{}, len(entry.Fields)+3)
	data["timestamp"] = entry.Timestamp.Format(tsFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	for _, fld := range entry.Fields {
		// Don't overwrite standard keys
		if fld.Key != "timestamp" && fld.Key != "level" && fld.Key != "message" {
			data[fld.Key] = fld.Value
		}
	}
	return json.Marshal(data)
}

// TextFormatter formats log entries as human-readable text.
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a TextFormatter with sensible defaults.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "2006-01-02T15:04:05.000"}
}

// Format formats the entry as text.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := "2006-01-02T15:04:05.000"
	if f.TimestampFormat != "" {
		tsFormat = f.TimestampFormat
	}

	var sb strings.Builder
	if !f.DisableTimestamp {
		sb.WriteString(entry.Timestamp.Format(tsFormat))
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "[%s] %s", entry.Level.String(), entry.Message)
	for _, fld := range entry.Fields {
		fmt.Fprintf(&sb, " %s=%v", fld.Key, fld.Value)
	}
	return []byte(sb.String()), nil
}
