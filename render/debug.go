// Package render draws a manager's state after the frame update. It reads
// components and never writes gameplay state.
package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

var (
	meshColor     = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	colliderColor = color.RGBA{G: 0xff, A: 0xff}
)

// Line is a projected segment in screen pixels.
type Line struct {
	X0, Y0, X1, Y1 float32
	Color          color.RGBA
}

// Assets resolves the refs wireframes and the sky are drawn from.
type Assets interface {
	Mesh(ref string) (assets.Mesh, error)
	CubeMap(ref string) (assets.CubeMap, error)
}

type DebugRenderer struct {
	assets Assets
	clear  color.RGBA
}

func NewDebugRenderer(a Assets, clear color.RGBA) *DebugRenderer {
	return &DebugRenderer{assets: a, clear: clear}
}

// Render fills the background and strokes every enabled wireframe as seen by
// the Player camera.
func (r *DebugRenderer) Render(m *ecs.Manager, screen *ebiten.Image) error {
	bounds := screen.Bounds()
	bg, err := r.Background(m)
	if err != nil {
		return err
	}
	screen.Fill(bg)

	lines, err := r.Lines(m, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}
	for _, l := range lines {
		vector.StrokeLine(screen, l.X0, l.Y0, l.X1, l.Y1, 1, l.Color, true)
	}
	return nil
}

// Background picks the sky face the camera is looking at, or the clear
// colour when the scene has no cube map.
func (r *DebugRenderer) Background(m *ecs.Manager) (color.RGBA, error) {
	e, err := m.SingletonEntity(ecs.Skybox)
	if err != nil {
		return r.clear, nil
	}
	sky, ok := ecs.GetOpt(m, e, component.SkyboxComponent.Kind())
	if !ok || sky.InvViewProjBuffer == nil {
		return r.clear, nil
	}
	cubeMap, ok := ecs.GetOpt(m, e, component.CubeMapComponent.Kind())
	if !ok {
		return r.clear, nil
	}
	faces, err := r.assets.CubeMap(cubeMap.Ref)
	if err != nil {
		return color.RGBA{}, err
	}

	near := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, -1}, sky.InvViewProjMat)
	far := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 1}, sky.InvViewProjMat)
	return faces.Faces[faceIndex(far.Sub(near))], nil
}

// faceIndex maps a direction to its cube face in +X, -X, +Y, -Y, +Z, -Z order.
func faceIndex(dir mgl32.Vec3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if abs(dir[i]) > abs(dir[axis]) {
			axis = i
		}
	}
	if dir[axis] < 0 {
		return axis*2 + 1
	}
	return axis * 2
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Lines projects mesh and collider wireframes onto a width x height screen.
// Segments crossing behind the camera are dropped.
func (r *DebugRenderer) Lines(m *ecs.Manager, width, height int) ([]Line, error) {
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return nil, err
	}
	cam, err := ecs.Get(m, player, component.CameraComponent.Kind())
	if err != nil {
		return nil, err
	}
	if _, err := cam.ViewProjBufferOrErr(); err != nil {
		return nil, err
	}
	p := projector{viewProj: cam.ViewProjMat, width: float32(width), height: float32(height)}

	var lines []Line
	for _, e := range m.EntitiesWith(component.MeshWireframeComponent.Kind(), component.MeshComponent.Kind(), component.TransformComponent.Kind()) {
		ref, _ := ecs.GetOpt(m, e, component.MeshComponent.Kind())
		transform, _ := ecs.GetOpt(m, e, component.TransformComponent.Kind())
		mesh, err := r.assets.Mesh(ref.Ref)
		if err != nil {
			return nil, err
		}
		for _, edge := range mesh.Edges() {
			a := transform.ModelMat.Mul4x1(mesh.Vertices[edge[0]].Vec4(1))
			b := transform.ModelMat.Mul4x1(mesh.Vertices[edge[1]].Vec4(1))
			if l, ok := p.line(a.Vec3(), b.Vec3(), meshColor); ok {
				lines = append(lines, l)
			}
		}
	}

	for _, e := range m.EntitiesWith(component.ColliderWireframeComponent.Kind(), component.TransformComponent.Kind()) {
		w, _ := ecs.GetOpt(m, e, component.ColliderWireframeComponent.Kind())
		transform, _ := ecs.GetOpt(m, e, component.TransformComponent.Kind())
		vertices := gpu.BytesFloat32(gpu.Contents(w.VertexBuffer))
		indices := gpu.BytesUint16(gpu.Contents(w.LineIndexBuffer))
		if len(indices) < w.LineIndexCount {
			return nil, fmt.Errorf("render: collider wireframe on entity %d: %d of %d indices readable", e, len(indices), w.LineIndexCount)
		}
		corner := func(i uint16) (mgl32.Vec3, bool) {
			at := int(i) * 3
			if at+3 > len(vertices) {
				return mgl32.Vec3{}, false
			}
			v := mgl32.Vec3{vertices[at], vertices[at+1], vertices[at+2]}
			return transform.ModelMat.Mul4x1(v.Vec4(1)).Vec3(), true
		}
		for i := 0; i+1 < w.LineIndexCount; i += 2 {
			a, okA := corner(indices[i])
			b, okB := corner(indices[i+1])
			if !okA || !okB {
				continue
			}
			if l, ok := p.line(a, b, colliderColor); ok {
				lines = append(lines, l)
			}
		}
	}
	return lines, nil
}

type projector struct {
	viewProj      mgl32.Mat4
	width, height float32
}

func (p projector) point(v mgl32.Vec3) (x, y float32, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	if clip.W() <= 1e-4 {
		return 0, 0, false
	}
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	return (ndcX + 1) / 2 * p.width, (1 - ndcY) / 2 * p.height, true
}

func (p projector) line(a, b mgl32.Vec3, c color.RGBA) (Line, bool) {
	x0, y0, okA := p.point(a)
	x1, y1, okB := p.point(b)
	if !okA || !okB {
		return Line{}, false
	}
	return Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c}, true
}

// DrawStats prints frame and player state in the top left corner.
func DrawStats(m *ecs.Manager, screen *ebiten.Image) {
	text := fmt.Sprintf("FPS: %.1f  TPS: %.1f  Entities: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), len(m.Entities()))
	if player, err := m.SingletonEntity(ecs.Player); err == nil {
		if t, ok := ecs.GetOpt(m, player, component.TransformComponent.Kind()); ok {
			text += fmt.Sprintf("\nPosition: %.2f %.2f %.2f", t.Position.X(), t.Position.Y(), t.Position.Z())
		}
		if c, ok := ecs.GetOpt(m, player, component.PlayerControllerComponent.Kind()); ok {
			text += fmt.Sprintf("\nFly: %v", c.FlyModeEnabled)
		}
		if b, ok := ecs.GetOpt(m, player, component.RigidBodyComponent.Kind()); ok {
			text += fmt.Sprintf("  Grounded: %v", b.Grounded)
		}
	}
	if d, err := ecs.GetResource[component.Diagnostics](m); err == nil {
		text += fmt.Sprintf("\nF1 mesh wireframes: %v  F2 collider wireframes: %v", d.MeshWireframesEnabled, d.ColliderWireframesEnabled)
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
