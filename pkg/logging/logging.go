// Package logging 基于 zerolog 构造库内使用的结构化日志。
//
// 库代码不持有全局 logger：各组件通过 Option 注入 zerolog.Logger，默认 Nop（静默）。
// 只有命令行入口调用 New 创建真正输出的 logger。
//
//	log := logging.New(logging.Config{Level: "debug", Format: "console"})
//	eng := engine.New(cfg, engine.WithLogger(log))
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config 日志配置。
type Config struct {
	// Level: trace, debug, info, warn, error, disabled；默认 info
	Level string `yaml:"level"`

	// Format: json 或 console；默认 json
	Format string `yaml:"format"`

	// Caller 输出调用位置
	Caller bool `yaml:"caller"`

	// Output 默认 os.Stderr
	Output io.Writer `yaml:"-"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

// New 按配置创建 logger。
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	output := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	zctx := zerolog.New(output).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	return zctx.Logger()
}

// Nop 返回不输出任何内容的 logger，组件未注入 logger 时使用。
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel 解析日志级别，无法识别时按 info 处理。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Duration 是记录耗时字段的小工具，字段名统一为 duration_ms。
func Duration(e *zerolog.Event, start time.Time) *zerolog.Event {
	return e.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000)
}
