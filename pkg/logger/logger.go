package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var global *zap.Logger = zap.NewNop()

// Init 初始化全局 logger；level 取 debug/info/warn/error，json=false 时输出 console 格式
func Init(level string, json bool) error {
    lv := zapcore.InfoLevel
    if err := lv.UnmarshalText([]byte(level)); err != nil && level != "" {
        return err
    }
    cfg := zap.NewProductionConfig()
    if !json {
        cfg = zap.NewDevelopmentConfig()
    }
    cfg.Level = zap.NewAtomicLevelAt(lv)
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    global = l
    return nil
}

// L 返回底层 *zap.Logger（注入第三方库时使用）
func L() *zap.Logger { return global }

func Debug(msg string, fields ...zap.Field) { global.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { global.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { global.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { global.Error(msg, fields...) }

// Sync 刷新缓冲日志，进程退出前调用
func Sync() { _ = global.Sync() }
