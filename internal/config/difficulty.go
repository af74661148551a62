package config

// minFireInterval is the shortest AI fire interval, a quarter second at 60 ticks.
const minFireInterval = 15

// DifficultyManager turns a run's score or elapsed ticks into a level in
// [0, 1] and scales enemy speed and fire rate by it.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64
}

// NewDifficultyManager creates a manager starting at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: clamp01(cfg.InitialLevel)}
}

// SetInitialLevel moves the starting level. Endless mode raises it every cycle.
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.base = clamp01(level)
}

// SetEnabled turns progression on or off. A disabled manager stays at the
// initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level grows during play.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current level, interpolated from the initial level to 1.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.base
	}
	return d.base + d.progress(score, ticks)*(1-d.base)
}

// progress is how far the run is towards Progression.MaxAt, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	maxAt := float64(max(1, d.cfg.Progression.MaxAt))
	switch d.cfg.Progression.Type {
	case "score":
		return clamp01(float64(score) / maxAt)
	case "time":
		return clamp01(float64(ticks) / maxAt)
	}
	return 0
}

// Speed scales baseSpeed up to baseSpeed*(1+SpeedMultiplier) at level 1.
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// FireInterval shortens baseTicks by up to FireIntervalReduction, never
// below minFireInterval.
func (d *DifficultyManager) FireInterval(baseTicks, score, ticks int) int {
	cut := int(d.Level(score, ticks) * float64(d.cfg.Scaling.FireIntervalReduction))
	return max(minFireInterval, baseTicks-cut)
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
