package helpers

import (
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SuccessLevel sits below zap's debug level so it never collides with a built-in level.
const SuccessLevel = zapcore.Level(-2)

const timeLayout = "2006-01-02 15:04:05"

// Logger prints timestamped, color-coded lines: info, warn, error and success.
type Logger struct {
	*zap.Logger
}

func NewLogger(w io.Writer, colored bool) *Logger {
	config := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       encodeTime,
		EncodeLevel:      levelEncoder(colored),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}

	enabled := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == SuccessLevel || l >= zapcore.InfoLevel
	})

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), enabled)
	return &Logger{Logger: zap.New(core)}
}

func (l *Logger) Success(msg string, fields ...zap.Field) {
	if ce := l.Check(SuccessLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format(timeLayout) + "]")
}

func levelEncoder(colored bool) zapcore.LevelEncoder {
	paint := map[zapcore.Level]*color.Color{
		SuccessLevel:        color.New(color.FgGreen),
		zapcore.InfoLevel:   color.New(color.FgBlue),
		zapcore.WarnLevel:   color.New(color.FgYellow),
		zapcore.ErrorLevel:  color.New(color.FgRed),
		zapcore.DPanicLevel: color.New(color.FgRed, color.Bold),
		zapcore.PanicLevel:  color.New(color.FgRed, color.Bold),
		zapcore.FatalLevel:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range paint {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		label := "[" + levelLabel(l) + "]"
		if c, ok := paint[l]; ok {
			label = c.Sprint(label)
		}
		enc.AppendString(label)
	}
}

func levelLabel(l zapcore.Level) string {
	switch l {
	case SuccessLevel:
		return "SUCCESS"
	case zapcore.WarnLevel:
		return "WARNING"
	default:
		return l.CapitalString()
	}
}
