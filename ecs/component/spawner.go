package component

// Spawner holds the countdown to the next spawn. Overshoot past zero is
// carried into the next interval so the spawn rate does not depend on the
// frame rate.
type Spawner struct {
	Interval  float64
	Remaining float64
	Height    float64
	Spawned   int
}

// Advance consumes dt and returns how many spawns are due.
func (s *Spawner) Advance(dt float64) int {
	if s.Interval <= 0 || dt < 0 {
		return 0
	}
	s.Remaining -= dt
	fired := 0
	for s.Remaining < 0 {
		fired++
		s.Remaining += s.Interval
	}
	return fired
}

var SpawnerComponent = NewComponent[Spawner]()
