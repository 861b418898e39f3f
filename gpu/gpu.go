// Package gpu is the boundary to the graphics API. Systems only create and
// fill resources through Device; the binding to a real backend lives outside
// the engine core.
package gpu

import "errors"

var (
	ErrDestroyed    = errors.New("gpu: resource destroyed")
	ErrOutOfRange   = errors.New("gpu: write out of range")
	ErrForeign      = errors.New("gpu: resource does not belong to this device")
	ErrInvalidSize  = errors.New("gpu: invalid size")
	ErrNotAvailable = errors.New("gpu: device not available")
)

type BufferUsage uint32

const (
	BufferUsageUniform BufferUsage = 1 << iota
	BufferUsageCopyDst
	BufferUsageVertex
	BufferUsageIndex
)

type TextureUsage uint32

const (
	TextureUsageRenderAttachment TextureUsage = 1 << iota
	TextureUsageTextureBinding
)

type BufferDescriptor struct {
	Label string
	Size  int
	Usage BufferUsage
	// Contents, when set, initialises the buffer at creation.
	Contents []byte
}

type TextureDescriptor struct {
	Label  string
	Width  int
	Height int
	Format string
	Usage  TextureUsage
}

type SamplerDescriptor struct {
	Label        string
	Compare      string
	MagFilter    string
	MinFilter    string
	AddressModeU string
	AddressModeV string
}

type Buffer interface {
	Label() string
	Size() int
	Destroy()
}

type Texture interface {
	Label() string
	Width() int
	Height() int
	Destroy()
}

type Sampler interface {
	Label() string
}

// Device creates GPU resources and queues buffer uploads. Submission is fire
// and forget: nothing waits for a write to complete.
type Device interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateSampler(desc SamplerDescriptor) (Sampler, error)
	WriteBuffer(b Buffer, offset int, data []byte) error
}

// EnsureBuffer returns *slot, creating it through d on first use.
func EnsureBuffer(d Device, slot *Buffer, desc BufferDescriptor) (Buffer, error) {
	if *slot != nil {
		return *slot, nil
	}
	b, err := d.CreateBuffer(desc)
	if err != nil {
		return nil, err
	}
	*slot = b
	return b, nil
}
