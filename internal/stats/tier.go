package stats

import (
	"math"

	"deadshot-stats/internal/domain"
)

// CompositeScore combines normalized K/D, win rate, per-minute output and a
// log-dampened volume component into a 0-100 ranking score.
func CompositeScore(s *domain.PlayerStats) float64 {
	kd := math.Min(s.KDRatio/BaselineKD, ComponentCap)
	kpm := math.Min(s.KillsPerMinute/BaselineKPM, ComponentCap)
	apmScore := math.Min(s.AssistsPerMinute/BaselineAPM, ComponentCap)

	volume := math.Log1p(float64(s.TotalMatches)) / math.Log1p(VolumeBaseline)
	volume = math.Min(volume, 1.0)

	composite := WeightKD*kd +
		WeightWinRate*s.WinRate +
		WeightKPM*kpm +
		WeightAPM*apmScore +
		WeightVolume*volume

	return composite * 100
}

// TierFor maps a composite score onto the fixed tier bands.
func TierFor(score float64) domain.Tier {
	switch {
	case score >= ThresholdChampion:
		return domain.TierChampion
	case score >= ThresholdElite:
		return domain.TierElite
	case score >= ThresholdVeteran:
		return domain.TierVeteran
	case score >= ThresholdRookie:
		return domain.TierRookie
	default:
		return domain.TierNovice
	}
}
