package engine

// RuleConfig holds configurable rule-variant settings.
type RuleConfig struct {
	TargetScore        int32  // cumulative score that ends the match
	HandSize           uint8  // cards dealt to each player
	AskPartnerRequired bool   // partner consent needed before an unconcealed go-out
	MaxHands           uint16 // hand-count cap for self-play; 0 = unlimited
}

// DefaultRuleConfig returns the Pagat Classic defaults.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		TargetScore:        5000,
		HandSize:           11,
		AskPartnerRequired: true,
		MaxHands:           0,
	}
}
