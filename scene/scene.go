// Package scene turns a prefab into a running manager with its fixed system
// pipeline.
package scene

import (
	"github.com/google/uuid"
	"github.com/jannetahkola/webgpu-game/ecs"
)

// Scene is one loaded prefab. Hot reload replaces the whole scene, so every
// load gets a fresh ID.
type Scene struct {
	ID      uuid.UUID
	Name    string
	Manager *ecs.Manager

	scheduler *ecs.Scheduler
}

// Update runs every system once in pipeline order. The first failing system
// aborts the frame and is reported as an *ecs.SystemError.
func (s *Scene) Update(dt float64) error {
	return s.scheduler.Update(dt, s.Manager)
}

func (s *Scene) Systems() []ecs.System {
	return s.scheduler.Systems()
}
