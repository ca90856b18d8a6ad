package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crm-service/internal/pkg/config"
)

var Log *zap.Logger
var log *zap.Logger
var logWriter *LogWriter

// customTimeEncoder 自定义时间格式编码器
// 输出格式: 2006-01-02 15:04:05.000
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

// Init 初始化日志
func Init(cfg *config.LogConfig) error {
	// 设置日志级别
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// 编码器配置
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       customTimeEncoder,
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}

	// 选择编码器
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		// Console格式: 时间 INFO 代码位置 日志消息 {json格式参数}
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// 输出位置
	var writeSyncer zapcore.WriteSyncer
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		writeSyncer = zapcore.AddSync(os.Stdout)
	} else {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	Log = zap.New(core, zap.AddCaller())
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	logWriter = &LogWriter{writeSyncer}

	return nil
}

// Close 关闭日志
func Close() error {
	var err1, err2 error
	if Log != nil {
		err1 = Log.Sync()
	}
	if log != nil {
		err2 = log.Sync()
	}

	if err1 != nil || err2 != nil {
		return fmt.Errorf("close log error: %v, %v", err1, err2)
	}
	return nil
}

// Debug 输出Debug日志
func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

// Info 输出Info日志
func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

// Warn 输出Warn日志
func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

// Error 输出Error日志
func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// Fatal 输出Fatal日志
func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}
