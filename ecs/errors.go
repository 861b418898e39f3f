package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilComponent     = errors.New("ecs: component is nil")
	ErrInvalidKind      = errors.New("ecs: invalid component kind")
	ErrNoComponent      = errors.New("ecs: no component")
	ErrNoSingleton      = errors.New("ecs: no singleton")
	ErrSingletonExists  = errors.New("ecs: singleton already exists")
	ErrUnknownSingleton = errors.New("ecs: unknown singleton")
	ErrEntityExists     = errors.New("ecs: entity already exists")
	ErrEntityRange      = errors.New("ecs: entity id out of range")
	ErrNoResource       = errors.New("ecs: no resource")
	ErrUnknownComponent = errors.New("ecs: unknown component type")
)

// SystemError reports which system aborted a frame.
type SystemError struct {
	Index  int
	System System
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("ecs: system %d (%T): %v", e.Index, e.System, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}
