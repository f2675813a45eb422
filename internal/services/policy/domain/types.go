// Package domain defines the action policy types
package domain

// Decision is the discrete outcome of the threshold table
type Decision string

const (
	// DecisionNone means the score cleared every threshold
	DecisionNone Decision = ""
	// DecisionWarnAndTimeout covers the lowest actionable band
	DecisionWarnAndTimeout Decision = "warn_and_timeout"
	// DecisionEscalate routes the message to human moderators
	DecisionEscalate Decision = "escalate"
	// DecisionAutoBan bans the author outright
	DecisionAutoBan Decision = "auto_ban"
	// DecisionEscalatedBanFailed marks a ban attempt that fell back to escalation
	DecisionEscalatedBanFailed Decision = "escalated_ban_failed"
)

// Config is the immutable policy configuration built at startup.
// Thresholds are expected monotone (TempMute <= Escalate <= AutoBan) by
// convention; validation warns but does not enforce
type Config struct {
	ThreshTempMute float64
	ThreshEscalate float64
	ThreshAutoBan  float64

	DeleteMessage bool
	WarnUser      bool
	TempMute      bool
	AutoBan       bool

	MuteSeconds       int
	ModQueueChannelID string
}
