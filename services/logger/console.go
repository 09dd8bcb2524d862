package logsvc

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/trezcool/studyflow/core"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelColors = [...]*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgCyan),
	color.New(color.FgYellow),
	color.New(color.FgRed),
	color.New(color.FgRed, color.Bold),
}

func (lvl Level) String() string {
	if lvl < LevelDebug || lvl > LevelFatal {
		return fmt.Sprintf("LEVEL(%d)", int(lvl))
	}
	return levelNames[lvl]
}

// ConsoleLogger writes entries at or above MinLevel to std. Used when Rollbar is not configured.
type ConsoleLogger struct {
	std      *log.Logger
	MinLevel Level
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, conf *core.Config) *ConsoleLogger {
	lvl := LevelInfo
	if conf.Debug {
		lvl = LevelDebug
	}
	return &ConsoleLogger{std: std, MinLevel: lvl}
}

// New returns a RollbarLogger when a Rollbar token is configured, a ConsoleLogger otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken != "" && !conf.TestMode {
		rl := NewRollbarLogger(std, conf)
		rl.Enable(true)
		return rl
	}
	return NewConsoleLogger(std, conf)
}

func (l ConsoleLogger) log(lvl Level, msg string, args []interface{}) {
	if lvl < l.MinLevel {
		return
	}
	printEntry(l.std, lvl, msg, args)
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	printEntry(l.std, LevelFatal, msg, args)
	l.std.Fatal(msg)
}

// printEntry writes `LEVEL msg` then one line per argument.
func printEntry(std *log.Logger, lvl Level, msg string, args []interface{}) {
	std.Println(levelColors[lvl].Sprint(lvl.String()) + " " + msg)
	for _, arg := range args {
		std.Println("  " + formatArg(arg))
	}
}

func formatArg(arg interface{}) string {
	switch v := arg.(type) {
	case *http.Request:
		return v.Method + " " + v.URL.RequestURI()
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, v[k]))
		}
		return strings.Join(pairs, " ")
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%+v", v)
	}
}
