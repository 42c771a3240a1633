package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var level_colors = map[logrus.Level]string{
	logrus.PanicLevel: "\x1b[31m",
	logrus.FatalLevel: "\x1b[31m",
	logrus.ErrorLevel: "\x1b[31m",
	logrus.WarnLevel:  "\x1b[33m",
	logrus.InfoLevel:  "\x1b[32m",
	logrus.DebugLevel: "\x1b[36m",
	logrus.TraceLevel: "\x1b[36m",
}

// Formats log lines as
// [LEVEL] 2025-01-01T00:00:00Z <component> message {"extra":"fields"}
type Formatter struct {
	NoColor bool
}

func (self *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}

	level_text := strings.ToUpper(entry.Level.String())
	if !self.NoColor {
		level_text = level_colors[entry.Level] + level_text + "\x1b[0m"
	}

	fmt.Fprintf(b, "[%s] %v ", level_text,
		entry.Time.UTC().Format(time.RFC3339))

	component, pres := entry.Data["component"]
	if pres {
		fmt.Fprintf(b, "<%v> ", component)
	}
	b.WriteString(strings.TrimRight(entry.Message, "\r\n"))

	extra := make(map[string]interface{})
	for k, v := range entry.Data {
		if k == "component" {
			continue
		}
		// Errors do not serialize to JSON by themselves.
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		extra[k] = v
	}

	if len(extra) > 0 {
		// Map keys are sorted so the output is stable.
		serialized, err := json.Marshal(extra)
		if err == nil {
			fmt.Fprintf(b, " %s", serialized)
		}
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}
