package module

import (
	"warden/internal/platform/config"
	guardsvc "warden/internal/services/guard/service"
	policydom "warden/internal/services/policy/domain"
)

// Options bundles the guard and policy configuration read from env
type Options struct {
	Guard  guardsvc.Config
	Policy policydom.Config
}

// FromConfig reads the bot configuration with the reference defaults
func FromConfig(cfg config.Conf) Options {
	return Options{
		Guard: guardsvc.Config{
			OwnerUserID:   cfg.MayString("OWNER_USER_ID", ""),
			ContextWindow: cfg.MayInt("CONTEXT_WINDOW", 2),
		},
		Policy: policydom.Config{
			ThreshTempMute: cfg.MayFloat64("THRESH_TEMP_MUTE", 0.65),
			ThreshEscalate: cfg.MayFloat64("THRESH_ESCALATE", 0.85),
			ThreshAutoBan:  cfg.MayFloat64("THRESH_AUTO_BAN", 0.95),

			DeleteMessage: cfg.MayBool("ACTION_DELETE_MESSAGE", true),
			WarnUser:      cfg.MayBool("ACTION_WARN_USER", true),
			TempMute:      cfg.MayBool("ACTION_TEMP_MUTE", true),
			AutoBan:       cfg.MayBool("ACTION_AUTO_BAN", false),

			MuteSeconds:       cfg.MayInt("TEMP_MUTE_SECONDS", 1800),
			ModQueueChannelID: cfg.MayString("MOD_QUEUE_CHANNEL_ID", ""),
		},
	}
}
