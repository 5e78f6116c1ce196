// Package utils provides utilities that is used in all sub-packages in sharelink
package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	Log_debug = iota
	Log_info
	Log_warning
	Log_error //error一般用于输出解析失败之类的信息, 但不致命
	Log_fatal

	DefaultLL = Log_info
)

// LogLevel 值越小越唠叨, 废话越多，值越大打印的越少，见log_开头的常量;
// 默认是 info级别.
var (
	LogLevel  int = DefaultLL
	ZapLogger *zap.Logger

	//若为空, 则只输出到 stdout
	LogOutFileName string
)

func init() {
	//库的使用者不一定会调用 InitLog, 所以先给一个什么都不做的logger, 避免 nil panic
	ZapLogger = zap.NewNop()
}

// InitLog 我们的loglevel就是zap的loglevel+1.
//
// 日志输出到 stderr, stdout 留给转换结果, 方便管道使用
func InitLog(firstMsg string) {
	atomicLevel := zap.NewAtomicLevel()
	atomicLevel.SetLevel(zapcore.Level(LogLevel - 1))

	var writes = []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}

	if LogOutFileName != "" {
		writes = append(writes, zapcore.AddSync(&lumberjack.Logger{
			Filename:   LogOutFileName,
			MaxSize:    10, //MB
			MaxBackups: 3,
			MaxAge:     28, //days
		}))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		TimeKey:     "time",
		FunctionKey: "func",
		EncodeLevel: zapcore.CapitalLevelEncoder,
		EncodeTime:  zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeName:  zapcore.FullNameEncoder,
		LineEnding:  zapcore.DefaultLineEnding,
	}), zapcore.NewMultiWriteSyncer(writes...), atomicLevel)

	ZapLogger = zap.New(core)

	if firstMsg != "" {
		ZapLogger.Info(firstMsg)
	}
}

func CanLogLevel(l int, msg string) *zapcore.CheckedEntry {
	return ZapLogger.Check(zapcore.Level(l-1), msg)

}

func canLogLevel(l zapcore.Level, msg string) *zapcore.CheckedEntry {
	return ZapLogger.Check(l, msg)

}

func CanLogErr(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.ErrorLevel, msg)

}

func CanLogInfo(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.InfoLevel, msg)

}
func CanLogWarn(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.WarnLevel, msg)

}
func CanLogDebug(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.DebugLevel, msg)

}

// Info 直接打印一条info日志, 没有额外字段时使用
func Info(msg string) {
	if ce := CanLogInfo(msg); ce != nil {
		ce.Write()
	}
}

func Warn(msg string) {
	if ce := CanLogWarn(msg); ce != nil {
		ce.Write()
	}
}

func Error(msg string) {
	if ce := CanLogErr(msg); ce != nil {
		ce.Write()
	}
}

var logLevelStrs = []string{"debug", "info", "warning", "error", "fatal"}

func LogLevelStrList() []string {
	return CloneSlice(logLevelStrs)
}

func LogLevelStr(lvl int) string {
	if lvl < 0 || lvl >= len(logLevelStrs) {
		return "unknown"
	}
	return logLevelStrs[lvl]
}
