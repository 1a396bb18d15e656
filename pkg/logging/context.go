package logging

import (
	"go.uber.org/zap"
)

// WithSession creates a logger with REPL session context.
// Use this to automatically include the session ID in all logs.
//
// Example:
//
//	log := logging.WithSession(sessionID)
//	log.Infow("statement executed", "kind", "insert")
func WithSession(sessionID string) *zap.SugaredLogger {
	return GetLogger().With("session", sessionID)
}

// WithTable creates a logger with table context.
//
// Example:
//
//	log := logging.WithTable("users")
//	log.Debugw("row appended", "rows", n)
func WithTable(tableName string) *zap.SugaredLogger {
	return GetLogger().With("table", tableName)
}

// WithPage creates a logger with page context.
// Useful for pager and storage operations.
//
// Example:
//
//	log := logging.WithPage(pageNum)
//	log.Debugw("page allocated")
func WithPage(pageNum uint32) *zap.SugaredLogger {
	return GetLogger().With("page", pageNum)
}

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("executor")
//	log.Infow("component initialized")
func WithComponent(component string) *zap.SugaredLogger {
	return GetLogger().With("component", component)
}

// WithError creates a logger with error context.
func WithError(err error) *zap.SugaredLogger {
	return GetLogger().With(zap.Error(err))
}
