package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/havennow/havennow/config"
)

// NewWithWriter builds a logger with the fixed level from cfg.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(cfg.Level))
	return NewLeveled(w, cfg.Format, lv)
}

// NewLeveled builds a logger whose level can change at runtime through lv.
func NewLeveled(w io.Writer, format string, lv *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lv}
	// Text in dev is easier to read; json for log shippers.
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Follow applies logging.level from config change events to lv until ctx is
// done or events is closed. The format is fixed at startup.
func Follow(ctx context.Context, lv *slog.LevelVar, events <-chan config.Event, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if !evt.Changed("logging") || evt.Old.Logging.Level == evt.New.Logging.Level {
				continue
			}
			lv.Set(ParseLevel(evt.New.Logging.Level))
			logger.Info("log level changed", "from", evt.Old.Logging.Level, "to", evt.New.Logging.Level)
		}
	}
}

// ParseLevel maps debug/info/warn/error, in any case, to a level. Anything
// else is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
