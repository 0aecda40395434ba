package ecs

// System advances part of the world by one frame of dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update drops the previous frame's events and runs every system once.
// Events pushed by systems stay readable until the next Update.
func (s *Scheduler) Update(w *World, dt float64) {
	w.Events().flush()
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
