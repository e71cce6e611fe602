package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// levelNames is indexed by log level
var levelNames = []string{"trace", "debug", "info", "warn", "error"}

func levelString(level int) string {
	if level < 0 || level >= len(levelNames) {
		return ""
	}
	return "[" + strings.ToUpper(levelNames[level]) + "]"
}

func parseLevel(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %s", s)
}

func logPrint(level int, format string, values ...any) {
	if logLevel > level {
		return
	}
	log.Printf(levelString(level)+" "+format, values...)
}

// logErrPrefix points to the caller of logger function, skipping level more frames
func logErrPrefix(level int) string {
	_, file, line, ok := runtime.Caller(level + 2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d ", file, line)
}
