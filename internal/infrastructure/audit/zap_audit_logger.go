package audit

import (
	"context"

	"github.com/you/portfoliosvc/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAuditLogger writes audit events as structured log entries on a
// dedicated "audit" logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger on top of logger
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger. Failed events are logged at warn.
func (l *ZapAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}

	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.UserName != "" {
		fields = append(fields, zap.String("user_name", event.UserName))
	}
	if event.IPAddress != "" {
		fields = append(fields, zap.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.SessionID))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error_msg", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Object("metadata", metadata(event.Metadata)))
	}

	level := zapcore.InfoLevel
	if !event.Success {
		level = zapcore.WarnLevel
	}
	if ce := l.logger.Check(level, "audit event"); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

type metadata map[string]interface{}

func (m metadata) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, v := range m {
		if err := enc.AddReflected(k, v); err != nil {
			return err
		}
	}
	return nil
}
