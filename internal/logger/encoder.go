package logger

import (
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// lineEncoder renders entries as `timestamp - name - LEVEL - message`, the
// line format shared by the console and the dated log file. Structured fields
// are not used by this logger; the embedded encoder only serves the rest of
// the zapcore.Encoder surface.
type lineEncoder struct {
	zapcore.Encoder
	name string
	pool buffer.Pool
}

func newLineEncoder(name string) zapcore.Encoder {
	return &lineEncoder{
		Encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{}),
		name:    name,
		pool:    buffer.NewPool(),
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	return &lineEncoder{
		Encoder: e.Encoder.Clone(),
		name:    e.name,
		pool:    e.pool,
	}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, _ []zapcore.Field) (*buffer.Buffer, error) {
	buf := e.pool.Get()
	buf.AppendString(ent.Time.Format("2006-01-02 15:04:05"))
	buf.AppendString(" - ")
	buf.AppendString(e.name)
	buf.AppendString(" - ")
	buf.AppendString(levelName(ent.Level))
	buf.AppendString(" - ")
	buf.AppendString(ent.Message)
	buf.AppendString("\n")

	return buf, nil
}

// levelName matches the level tags used in existing log files, where warnings
// are spelled out in full.
func levelName(level zapcore.Level) string {
	if level == zapcore.WarnLevel {
		return "WARNING"
	}

	return level.CapitalString()
}
