package bootstrap

import "context"

// AuditLog is one operational audit entry (startup, shutdown, config
// reloads). Request-level auditing lives in the request middleware instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
