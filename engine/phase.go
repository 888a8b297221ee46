package engine

type Phase int

const (
	AcquisitionPhase Phase = iota
	ArmyPlacementPhase
	MoveAndAttackPhase
	EndRoundPhase
)

func (p Phase) String() string {
	switch p {
	case AcquisitionPhase:
		return "acquisition"
	case ArmyPlacementPhase:
		return "army_placement"
	case MoveAndAttackPhase:
		return "move_and_attack"
	case EndRoundPhase:
		return "end_round"
	default:
		return "unknown"
	}
}

// MarshalText lets phases appear by name in JSON snapshots.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
