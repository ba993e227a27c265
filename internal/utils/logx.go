package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"restrict_ip/internal/dataType"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogHost = "default"

// LogxManager keeps one access logger per requested host
type LogxManager struct {
	basePath string
	loggers  map[string]*zap.Logger
	mu       sync.RWMutex
}

func NewManager(base string) *LogxManager {
	m := &LogxManager{basePath: base, loggers: make(map[string]*zap.Logger)}

	if err := os.MkdirAll(m.basePath, 0744); err != nil {
		log.Printf("failed to create base log dir %s: %v", m.basePath, err)
	}
	return m
}

func (m *LogxManager) getLogger(host string) *zap.Logger {
	host = logDirName(host)

	m.mu.RLock()
	if lg, ok := m.loggers[host]; ok {
		m.mu.RUnlock()
		return lg
	}
	m.mu.RUnlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	if lg, ok := m.loggers[host]; ok {
		return lg
	}
	dir := filepath.Join(m.basePath, host)
	if err := os.MkdirAll(dir, 0744); err != nil {
		log.Printf("failed to create log dir %s: %v", dir, err)
	}

	encCfg := zapcore.EncoderConfig{MessageKey: "msg", LineEnding: zapcore.DefaultLineEnding}
	encoder := zapcore.NewConsoleEncoder(encCfg)

	infoOut := rotatingFile(filepath.Join(dir, "info.log"))
	errorOut := rotatingFile(filepath.Join(dir, "error.log"))
	dbgOut := rotatingFile(filepath.Join(dir, "debug.log"))

	infoLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == zapcore.InfoLevel })
	errLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel })
	dbgLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l == zapcore.DebugLevel })

	tee := zapcore.NewTee(
		zapcore.NewCore(encoder, infoOut, infoLv),
		zapcore.NewCore(encoder, errorOut, errLv),
		zapcore.NewCore(encoder, dbgOut, dbgLv),
	)
	lg := zap.New(tee)
	m.loggers[host] = lg
	return lg
}

// Sync flushes every host logger
func (m *LogxManager) Sync() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, lg := range m.loggers {
		_ = lg.Sync()
	}
}

func rotatingFile(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
}

// logDirName keeps a Host header from escaping the log directory
func logDirName(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return defaultLogHost
	}
	name := filepath.Base(filepath.Clean("/" + host))
	if name == "/" || name == "." || name == "" {
		return defaultLogHost
	}
	return name
}

func accessLine(reqData dataType.RequestContext, msg, msg2 string) string {
	return fmt.Sprintf("%s - - [%s] %s %s %s %s %s",
		reqData.ClientIP,
		time.Now().Format("02/Jan/2006:15:04:05 -0700"),
		msg,
		reqData.Host,
		reqData.Path,
		DescribeUserAgent(reqData.UserAgent),
		msg2,
	)
}

func (m *LogxManager) LogInfo(reqData dataType.RequestContext, msg, msg2 string) {
	m.getLogger(reqData.Host).Info(accessLine(reqData, msg, msg2))
}

func (m *LogxManager) LogError(reqData dataType.RequestContext, msg, msg2 string) {
	m.getLogger(reqData.Host).Error(accessLine(reqData, msg, msg2))
}

func (m *LogxManager) LogDebug(reqData dataType.RequestContext, msg, msg2 string) {
	m.getLogger(reqData.Host).Debug(accessLine(reqData, msg, msg2))
}

// NewLogger builds the daemon logger: warnings and above go to stderr, everything
// at or above level goes to <base>/restrict_ip.log.
func NewLogger(base string, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	stderrLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.WarnLevel && l >= level })
	fileLv := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level })

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLv)}
	if base != "" {
		if err := os.MkdirAll(base, 0744); err != nil {
			log.Printf("failed to create base log dir %s: %v", base, err)
		} else {
			cores = append(cores, zapcore.NewCore(encoder, rotatingFile(filepath.Join(base, "restrict_ip.log")), fileLv))
		}
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
