package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Reservation engine logging methods

// LogTicketSold logs a successful seat purchase
func (l *Logger) LogTicketSold(ctx context.Context, ticketID, tripID uint, seatNumber int, price string) {
	l.Logger.InfoContext(ctx,
		"Ticket Sold",
		slog.Uint64("ticket_id", uint64(ticketID)),
		slog.Uint64("trip_id", uint64(tripID)),
		slog.Int("seat_number", seatNumber),
		slog.String("price", price),
	)
}

// LogTicketCancelled logs a ticket cancellation with its refund outcome
func (l *Logger) LogTicketCancelled(ctx context.Context, ticketID uint, refundPercentage int, refundAmount string) {
	l.Logger.InfoContext(ctx,
		"Ticket Cancelled",
		slog.Uint64("ticket_id", uint64(ticketID)),
		slog.Int("refund_percentage", refundPercentage),
		slog.String("refund_amount", refundAmount),
	)
}

// LogHoldCreated logs a new seat hold
func (l *Logger) LogHoldCreated(ctx context.Context, holdID, tripID uint, seatNumber int, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Seat Hold Created",
		slog.Uint64("hold_id", uint64(holdID)),
		slog.Uint64("trip_id", uint64(tripID)),
		slog.Int("seat_number", seatNumber),
		slog.Time("expires_at", expiresAt),
	)
}

// LogHoldSweep logs the outcome of an expiry sweep
func (l *Logger) LogHoldSweep(ctx context.Context, expired int, duration time.Duration) {
	if expired == 0 {
		l.Logger.DebugContext(ctx, "Hold Sweep", slog.Int("expired", expired), slog.Duration("duration", duration))
		return
	}
	l.Logger.InfoContext(ctx, "Hold Sweep", slog.Int("expired", expired), slog.Duration("duration", duration))
}

// LogOverbookingRejected logs a purchase rejected by the capacity ceiling
func (l *Logger) LogOverbookingRejected(ctx context.Context, tripID uint, occupancyPercent float64) {
	l.Logger.WarnContext(ctx,
		"Overbooking Rejected",
		slog.Uint64("trip_id", uint64(tripID)),
		slog.Float64("occupancy_percent", occupancyPercent),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// WarnWithContext logs a warning message with context
func (l *Logger) WarnWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.WarnContext(ctx, msg, args...)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.DebugContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
