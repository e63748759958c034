// Package audit provides structured logging for security-relevant events:
// failed logins, rejected tokens, rate-limit hits. Kept separate from the
// application logger so the stream can be shipped to a SIEM on its own.
package audit

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginSuccess       EventType = "login_success"
	EventRoleMismatch       EventType = "role_mismatch"
	EventInvalidToken       EventType = "invalid_token"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// Event is a single security event.
type Event struct {
	Event     EventType
	Subject   string // email or user id, never a password
	IP        string
	UserAgent string
	RequestID string
}

// Logger writes audit events through zap.
type Logger struct {
	zap         *zap.Logger
	serviceName string
}

var defaultLogger *Logger

// Init builds the audit logger. Safe to call once at startup.
func Init(serviceName string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	defaultLogger = &Logger{zap: logger, serviceName: serviceName}
	return defaultLogger
}

// Default returns the logger built by Init, or nil before Init runs.
func Default() *Logger {
	return defaultLogger
}

// Log writes one audit event.
func (l *Logger) Log(e Event) {
	if l == nil || l.zap == nil {
		return
	}
	l.zap.Info("security_event",
		zap.String("service", l.serviceName),
		zap.String("event", string(e.Event)),
		zap.String("subject", e.Subject),
		zap.String("ip", e.IP),
		zap.String("user_agent", e.UserAgent),
		zap.String("request_id", e.RequestID),
		zap.Time("at", time.Now()),
	)
}

// Sync flushes buffered entries. Called on shutdown.
func (l *Logger) Sync() {
	if l != nil && l.zap != nil {
		_ = l.zap.Sync()
	}
}
