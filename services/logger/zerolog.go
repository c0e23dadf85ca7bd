package logsvc

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/kazi/core"
)

type ZerologLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ZerologLogger)(nil)

// NewZerologLogger writes to w at level ("debug", "info", ...; defaults to info).
// format "console" gives human readable output, anything else JSON lines.
func NewZerologLogger(w io.Writer, level, format, appName string) *ZerologLogger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Str("app", appName).Logger()
	return &ZerologLogger{zl: zl}
}

// expected args: error, map[string]interface{} (fields) or any value.
func (l ZerologLogger) log(e *zerolog.Event, msg string, args []interface{}) {
	for i, arg := range args {
		switch v := arg.(type) {
		case error:
			e = e.Err(v)
		case map[string]interface{}:
			e = e.Fields(v)
		default:
			e = e.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}
	e.Msg(msg)
}

func (l ZerologLogger) Debug(msg string, args ...interface{}) { l.log(l.zl.Debug(), msg, args) }
func (l ZerologLogger) Info(msg string, args ...interface{})  { l.log(l.zl.Info(), msg, args) }
func (l ZerologLogger) Warn(msg string, args ...interface{})  { l.log(l.zl.Warn(), msg, args) }
func (l ZerologLogger) Error(msg string, args ...interface{}) { l.log(l.zl.Error(), msg, args) }
func (l ZerologLogger) Fatal(msg string, args ...interface{}) { l.log(l.zl.Fatal(), msg, args) }
