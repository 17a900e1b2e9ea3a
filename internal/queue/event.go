// Package queue defines message payloads exchanged over the message broker.
package queue

// AuthAuditQueue is the durable queue receiving authentication activity.
const AuthAuditQueue = "auth.audit"

// Event kinds published to the audit queue.
const (
	EventUserCreated    = "user.created"
	EventLoginSucceeded = "login.succeeded"
	EventLoginFailed    = "login.failed"
)

// AuthEvent records one authentication-related occurrence. It carries
// enough for downstream alerting and audit trails without a database
// query; passwords and hashes never appear here.
type AuthEvent struct {
	Kind       string `json:"kind"`
	UserID     uint64 `json:"user_id,omitempty"`
	TenantID   uint64 `json:"tenant_id,omitempty"`
	Username   string `json:"username"`
	RemoteIP   string `json:"remote_ip,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
