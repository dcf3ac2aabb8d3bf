package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/vagnerwentz/bankapi/pkg/config"
)

// SetupLogger builds the process logger on charmbracelet/log and installs it
// as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	styles := log.DefaultStyles()
	var (
		green  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
		pink   = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
		red    = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
		purple = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
	)

	levels := []struct {
		level log.Level
		icon  string
		color lipgloss.AdaptiveColor
	}{
		{log.DebugLevel, "🐛", purple},
		{log.InfoLevel, "ℹ️", green},
		{log.WarnLevel, "⚠️", pink},
		{log.ErrorLevel, "❌", red},
	}
	for _, l := range levels {
		styles.Levels[l.level] = lipgloss.NewStyle().
			SetString(l.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(l.color)
	}

	bold := lipgloss.NewStyle().Bold(true)
	keyColors := map[string]lipgloss.AdaptiveColor{
		"error":  red,
		"prefix": purple,
		"caller": purple,
		"time":   purple,
	}
	for key, c := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(c)
		styles.Values[key] = bold
	}
	// Account numbers and money stand out in text output.
	for _, key := range []string{"number", "source", "receiver", "amount", "transaction_id"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(green)
	}
	styles.Keys["operation"] = lipgloss.NewStyle().Foreground(pink)

	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}
