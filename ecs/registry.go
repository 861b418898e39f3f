package ecs

import (
	"fmt"
	"slices"
)

// ComponentDecoder builds a component from snapshot data. data is the value
// found under a component entry's "data" key, passed verbatim.
type ComponentDecoder func(data any) (Attachment, error)

// ComponentEncoder produces snapshot data for the component on e. ok is
// false when e has no such component.
type ComponentEncoder func(m *Manager, e Entity) (data any, ok bool, err error)

type ComponentCodec struct {
	Decode ComponentDecoder
	Encode ComponentEncoder
}

// ComponentRegistry maps snapshot type names to component codecs. It is
// populated once at startup and handed to whatever restores snapshots.
type ComponentRegistry struct {
	codecs map[string]ComponentCodec
	order  []string
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{codecs: make(map[string]ComponentCodec)}
}

// Register stores codec under name, replacing an earlier registration.
func (r *ComponentRegistry) Register(name string, codec ComponentCodec) {
	if _, ok := r.codecs[name]; !ok {
		r.order = append(r.order, name)
	}
	r.codecs[name] = codec
}

// Get resolves name, failing if it was never registered.
func (r *ComponentRegistry) Get(name string) (ComponentCodec, error) {
	codec, ok := r.codecs[name]
	if !ok || codec.Decode == nil {
		return ComponentCodec{}, fmt.Errorf("%w %q", ErrUnknownComponent, name)
	}
	return codec, nil
}

// Reset clears every registration.
func (r *ComponentRegistry) Reset() {
	clear(r.codecs)
	r.order = r.order[:0]
}

// Names returns the registered names in registration order.
func (r *ComponentRegistry) Names() []string {
	return slices.Clone(r.order)
}

func (r *ComponentRegistry) Len() int {
	return len(r.order)
}

// RegisterComponent registers a typed decoder and encoder under the kind's
// name. encode may be nil for components that are never serialised.
func RegisterComponent[T any](r *ComponentRegistry, kind ComponentKind[T], decode func(data any) (*T, error), encode func(v *T) (any, error)) {
	codec := ComponentCodec{
		Decode: func(data any) (Attachment, error) {
			v, err := decode(data)
			if err != nil {
				return Attachment{}, err
			}
			if v == nil {
				return Attachment{}, fmt.Errorf("%w: %s", ErrNilComponent, kind.Name())
			}
			return With(kind, v), nil
		},
	}
	if encode != nil {
		codec.Encode = func(m *Manager, e Entity) (any, bool, error) {
			v, ok := GetOpt(m, e, kind)
			if !ok {
				return nil, false, nil
			}
			data, err := encode(v)
			if err != nil {
				return nil, false, err
			}
			return data, true, nil
		}
	}
	r.Register(kind.Name(), codec)
}
