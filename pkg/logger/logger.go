package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.SugaredLogger
	once   sync.Once
)

// Init 初始化全局日志
// mode: "debug" 彩色控制台输出, 其他值为生产 JSON 输出
func Init(mode string) {
	once.Do(func() {
		var cfg zap.Config
		if mode == "debug" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
		}
		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		global = l.Sugar()
	})
}

// L 获取全局日志实例，未初始化时退化为 no-op 之外的开发日志
func L() *zap.SugaredLogger {
	if global == nil {
		Init("debug")
	}
	return global
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
