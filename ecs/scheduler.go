package ecs

// System is one per-frame update unit. Systems talk to each other only
// through components and resources stored in the manager.
type System interface {
	Update(dt float64, m *Manager) error
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once, stopping at the first failure.
func (s *Scheduler) Update(dt float64, m *Manager) error {
	for i, system := range s.systems {
		if err := system.Update(dt, m); err != nil {
			return &SystemError{Index: i, System: system, Err: err}
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
