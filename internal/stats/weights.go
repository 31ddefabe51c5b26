package stats

// Component weights for the composite ranking score. They sum to 1.0; the
// composite is scaled to 0-100 before tier thresholds apply.
const (
	WeightKD      = 0.30
	WeightWinRate = 0.25
	WeightKPM     = 0.20
	WeightVolume  = 0.15
	WeightAPM     = 0.10
)

// Baseline values normalize each component so that baseline performance
// contributes 1.0 before weighting.
const (
	BaselineKD  = 2.0 // K/D considered strong in pub lobbies
	BaselineKPM = 1.0 // kills per minute
	BaselineAPM = 0.5 // assists per minute
)

// ComponentCap bounds each normalized component so one outlier stat cannot
// dominate the composite.
const ComponentCap = 1.5

// VolumeBaseline is the match count at which the log-dampened volume
// component saturates. The transform keeps grinding from outranking skill.
const VolumeBaseline = 50

// Tier thresholds on the 0-100 composite. Fixed constants, deliberately not
// derived from the data distribution, so tiers stay stable as matches are
// added.
const (
	ThresholdChampion = 85.0
	ThresholdElite    = 65.0
	ThresholdVeteran  = 45.0
	ThresholdRookie   = 25.0
)

// FormationChemistryWeight is the share of a side's predicted synergy taken
// from historical pairwise chemistry when any exists.
const FormationChemistryWeight = 0.3

// Badge thresholds. Each badge is an independent predicate over a player's
// aggregates; there is no persisted unlock state.
const (
	BadgeSharpshooterKD     = 2.0
	BadgeSlayerKills        = 500
	BadgeUnstoppableStreak  = 5
	BadgeCloserWinRate      = 0.6
	BadgeCloserMinMatches   = 10
	BadgeSupportAvgAssists  = 5.0
	BadgeSpeedDemonKPM      = 1.5
	BadgeTagHunterTags      = 100
	BadgeMoneybagsCoins     = 1000
	BadgeMarathonMatches    = 50
	BadgeSurvivorAvgDeaths  = 3.0
	BadgeSurvivorMinMatches = 10
)
