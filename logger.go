package docpager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ILogger interface for logging.
type ILogger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warningf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// SlogLogger implements ILogger interface using slog.Logger.
type SlogLogger struct {
	l   *slog.Logger
	msg string
}

// NewSlogLogger returns new SlogLogger. msg is used as the record message, the formatted text goes to "message".
func NewSlogLogger(l *slog.Logger, msg string) (*SlogLogger, error) {
	if l == nil {
		return nil, errors.New("NewSlogLogger: logger cannot be nil")
	}
	if msg == "" {
		return nil, errors.New("NewSlogLogger: msg cannot be empty")
	}

	return &SlogLogger{
		l:   l,
		msg: msg,
	}, nil
}

func (s *SlogLogger) Debugf(ctx context.Context, format string, args ...any) {
	s.l.DebugContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Infof(ctx context.Context, format string, args ...any) {
	s.l.InfoContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Warningf(ctx context.Context, format string, args ...any) {
	s.l.WarnContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

func (s *SlogLogger) Errorf(ctx context.Context, format string, args ...any) {
	s.l.ErrorContext(ctx, s.msg, slog.String("message", fmt.Sprintf(format, args...)))
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(context.Context, string, ...any)   {}
func (NopLogger) Infof(context.Context, string, ...any)    {}
func (NopLogger) Warningf(context.Context, string, ...any) {}
func (NopLogger) Errorf(context.Context, string, ...any)   {}

// LoggerOrNop returns l, or NopLogger if l is nil.
func LoggerOrNop(l ILogger) ILogger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
