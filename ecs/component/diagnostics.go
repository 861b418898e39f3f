package component

// Diagnostics is a manager resource toggling debug overlays. The setters mark
// a flag dirty so the owning wireframe system applies it on its next update.
type Diagnostics struct {
	MeshWireframesEnabled     bool
	MeshWireframesDirty       bool
	ColliderWireframesEnabled bool
	ColliderWireframesDirty   bool
}

func NewDiagnostics(meshWireframes, colliderWireframes bool) *Diagnostics {
	return &Diagnostics{
		MeshWireframesEnabled:     meshWireframes,
		MeshWireframesDirty:       true,
		ColliderWireframesEnabled: colliderWireframes,
		ColliderWireframesDirty:   true,
	}
}

func (d *Diagnostics) SetMeshWireframesEnabled(v bool) {
	d.MeshWireframesEnabled = v
	d.MeshWireframesDirty = true
}

func (d *Diagnostics) SetColliderWireframesEnabled(v bool) {
	d.ColliderWireframesEnabled = v
	d.ColliderWireframesDirty = true
}
