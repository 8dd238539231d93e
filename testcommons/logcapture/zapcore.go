package logcapture

import (
	"context"

	"go.uber.org/zap/zapcore"

	"github.com/pdfclown/lib-testcommons/testcommons/log"
)

// Core returns a zapcore.Core writing every entry into the captor. Tee it
// into an existing zap logger to capture events without rewiring logging:
//
//	logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
//	    return zapcore.NewTee(core, captor.Core())
//	}))
func (c *Captor) Core() zapcore.Core {
	return &captorCore{captor: c}
}

type captorCore struct {
	captor *Captor
	fields []zapcore.Field
}

func (cc *captorCore) Enabled(_ zapcore.Level) bool { return true }

func (cc *captorCore) With(fields []zapcore.Field) zapcore.Core {
	child := &captorCore{captor: cc.captor}
	child.fields = append(child.fields, cc.fields...)
	child.fields = append(child.fields, fields...)

	return child
}

func (cc *captorCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return checked.AddCore(entry, cc)
}

func (cc *captorCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range cc.fields {
		f.AddTo(enc)
	}

	for _, f := range fields {
		f.AddTo(enc)
	}

	converted := make([]log.Field, 0, len(enc.Fields))
	for key, value := range enc.Fields {
		converted = append(converted, log.Any(key, value))
	}

	cc.captor.Log(context.Background(), zapLevelToLog(entry.Level), entry.Message, converted...)

	return nil
}

func (cc *captorCore) Sync() error { return nil }

// zapLevelToLog maps zap severities onto the library's level scale; levels
// above error (panic, fatal) collapse to error.
func zapLevelToLog(level zapcore.Level) log.Level {
	switch level {
	case zapcore.DebugLevel:
		return log.LevelDebug
	case zapcore.InfoLevel:
		return log.LevelInfo
	case zapcore.WarnLevel:
		return log.LevelWarn
	default:
		return log.LevelError
	}
}
