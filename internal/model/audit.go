package model

import "time"

// AuditAction is the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntity names the resource type an audit entry refers to.
type AuditEntity string

const (
	AuditStudent    AuditEntity = "student"
	AuditTeacher    AuditEntity = "teacher"
	AuditDepartment AuditEntity = "department"
)

// AuditEntry records who changed what.
type AuditEntry struct {
	ID         int64       `json:"id"`
	Actor      string      `json:"actor"`
	Action     AuditAction `json:"action"`
	Entity     AuditEntity `json:"entity"`
	EntityKey  string      `json:"entityKey"`
	OccurredAt time.Time   `json:"occurredAt"`
}
