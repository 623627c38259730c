package eventstore

import "gorm.io/datatypes"

// EventModel is one admitted event identity. The unique index on
// EventID is the at-most-once admission primitive: a second insert for
// the same identity is a no-op.
type EventModel struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	EventID   string         `gorm:"column:event_id;uniqueIndex;size:64;not null"`
	Symbol    string         `gorm:"column:symbol;index"`
	EventType string         `gorm:"column:event_type"`
	BarTime   int64          `gorm:"column:bar_time;index"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	CreatedAt int64          `gorm:"column:created_at;autoCreateTime"`
}

func (EventModel) TableName() string { return "events" }

// DecisionModel is an append-only decision record row. The full record
// (score contributions, gate audit trail, order plan) rides along as
// JSON so the audit view never loses structure.
type DecisionModel struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	EventID   string         `gorm:"column:event_id;uniqueIndex;size:64;not null"`
	TraceID   string         `gorm:"column:trace_id;size:36"`
	Symbol    string         `gorm:"column:symbol;index"`
	Decision  string         `gorm:"column:decision"`
	Reason    string         `gorm:"column:reason"`
	PScore    int            `gorm:"column:p_score"`
	BarTime   int64          `gorm:"column:bar_time"`
	Record    datatypes.JSON `gorm:"column:record"`
	CreatedAt int64          `gorm:"column:created_at;autoCreateTime"`
}

func (DecisionModel) TableName() string { return "decisions" }
