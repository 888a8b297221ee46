// meta/meta.go
package meta

// GO_ROUTINES defines the number of games simulated in parallel.
const GO_ROUTINES = 8

// MAX_ATTACK_ARMIES is the most armies (and dice) an attack commits at once.
const MAX_ATTACK_ARMIES = 3

// MAX_DEFEND_ARMIES is the most armies (and dice) a defender rolls with.
const MAX_DEFEND_ARMIES = 2

// DIE_SIDES defines the faces of a combat die.
const DIE_SIDES = 6

// TERRITORIES_PER_ARMY is the divisor of the base reinforcement.
const TERRITORIES_PER_ARMY = 3

// MAX_ROUNDS bounds a game where nobody wins. 0 disables the bound.
const MAX_ROUNDS = 300

// GAMES defines the number of simulated games per run.
const GAMES = 10
