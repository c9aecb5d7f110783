package logging

import (
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Options configures log output. Zero values mean console-only logging at
// info level.
type Options struct {
	Path       string // log file; empty disables file output
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
	Debug      bool
}

func Init(opts Options) {
	level := zapcore.InfoLevel
	encCfg := zap.NewProductionEncoderConfig()
	if opts.Debug {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	out := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opts.Path != "" {
		out = append(out, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   opts.Compress,
		}))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(out...), level)
	logger = zap.New(core).Sugar()
}

func Debugf(template string, args ...any) { logger.Debugf(template, args...) }
func Infof(template string, args ...any)  { logger.Infof(template, args...) }
func Warnf(template string, args ...any)  { logger.Warnf(template, args...) }
func Errorf(template string, args ...any) { logger.Errorf(template, args...) }
func Fatalf(template string, args ...any) { logger.Fatalf(template, args...) }

func ErrorWithStack(err error) {
	logger.Errorf("%T:\nstack trace:\n%+v", errors.Cause(err), err)
}
