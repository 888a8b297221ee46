package game

import "errors"

var (
	ErrTerritoryUnavailable = errors.New("territory is owned by another player")
	ErrNotEnoughArmies      = errors.New("not enough armies to attack")
	ErrAttackOwnCountry     = errors.New("cannot attack own territory")
	ErrNoReinforcementsLeft = errors.New("no reinforcements left")
	ErrNotOwned             = errors.New("territory not owned by player")
	ErrNotAdjacent          = errors.New("territories are not adjacent")
	ErrTerritoryFree        = errors.New("territory is not owned by anyone")
	ErrUnknownTerritory     = errors.New("unknown territory")
	ErrDuplicateTerritory   = errors.New("duplicate territory")
	ErrUnknownPlayer        = errors.New("unknown player")
	ErrInvalidBonus         = errors.New("region bonus must be positive")
	ErrInvalidRules         = errors.New("invalid rules")
	ErrInvalidMap           = errors.New("invalid map")

	// ErrInvariantViolation marks a programming error, never a user mistake.
	ErrInvariantViolation = errors.New("invariant violation")
)
