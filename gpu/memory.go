package gpu

import (
	"fmt"
	"sync"
)

// Stats counts the side effects a MemoryDevice has observed.
type Stats struct {
	BuffersCreated  int
	TexturesCreated int
	SamplersCreated int
	Writes          int
	BytesWritten    int
	Destroyed       int
}

// MemoryDevice keeps every resource in host memory. It backs the debug
// renderer and lets tests count allocations and uploads.
type MemoryDevice struct {
	mu    sync.Mutex
	stats Stats
	// writes per buffer label
	writes map[string]int
}

func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{writes: make(map[string]int)}
}

type memoryBuffer struct {
	device    *MemoryDevice
	label     string
	usage     BufferUsage
	data      []byte
	destroyed bool
}

func (b *memoryBuffer) Label() string { return b.label }
func (b *memoryBuffer) Size() int     { return len(b.data) }

func (b *memoryBuffer) Destroy() {
	b.device.mu.Lock()
	defer b.device.mu.Unlock()
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.device.stats.Destroyed++
}

type memoryTexture struct {
	device    *MemoryDevice
	desc      TextureDescriptor
	destroyed bool
}

func (t *memoryTexture) Label() string { return t.desc.Label }
func (t *memoryTexture) Width() int    { return t.desc.Width }
func (t *memoryTexture) Height() int   { return t.desc.Height }

func (t *memoryTexture) Destroy() {
	t.device.mu.Lock()
	defer t.device.mu.Unlock()
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.device.stats.Destroyed++
}

type memorySampler struct {
	desc SamplerDescriptor
}

func (s *memorySampler) Label() string { return s.desc.Label }

func (d *MemoryDevice) CreateBuffer(desc BufferDescriptor) (Buffer, error) {
	if desc.Size <= 0 || len(desc.Contents) > desc.Size {
		return nil, fmt.Errorf("%w: buffer %q size %d", ErrInvalidSize, desc.Label, desc.Size)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	b := &memoryBuffer{device: d, label: desc.Label, usage: desc.Usage, data: make([]byte, desc.Size)}
	copy(b.data, desc.Contents)
	d.stats.BuffersCreated++
	return b, nil
}

func (d *MemoryDevice) CreateTexture(desc TextureDescriptor) (Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: texture %q %dx%d", ErrInvalidSize, desc.Label, desc.Width, desc.Height)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.TexturesCreated++
	return &memoryTexture{device: d, desc: desc}, nil
}

func (d *MemoryDevice) CreateSampler(desc SamplerDescriptor) (Sampler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.SamplersCreated++
	return &memorySampler{desc: desc}, nil
}

func (d *MemoryDevice) WriteBuffer(b Buffer, offset int, data []byte) error {
	mb, ok := b.(*memoryBuffer)
	if !ok || mb.device != d {
		return ErrForeign
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if mb.destroyed {
		return fmt.Errorf("%w: %s", ErrDestroyed, mb.label)
	}
	if offset < 0 || offset+len(data) > len(mb.data) {
		return fmt.Errorf("%w: %s [%d:%d] of %d", ErrOutOfRange, mb.label, offset, offset+len(data), len(mb.data))
	}
	copy(mb.data[offset:], data)
	d.stats.Writes++
	d.stats.BytesWritten += len(data)
	d.writes[mb.label]++
	return nil
}

func (d *MemoryDevice) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// WritesTo returns the number of writes to buffers labelled label.
func (d *MemoryDevice) WritesTo(label string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes[label]
}

// Contents returns a copy of a buffer's bytes, or nil if b was not created by
// a MemoryDevice.
func Contents(b Buffer) []byte {
	mb, ok := b.(*memoryBuffer)
	if !ok {
		return nil
	}
	mb.device.mu.Lock()
	defer mb.device.mu.Unlock()
	out := make([]byte, len(mb.data))
	copy(out, mb.data)
	return out
}

// Destroyed reports whether b has been destroyed. Only memory resources are
// tracked.
func Destroyed(b Buffer) bool {
	mb, ok := b.(*memoryBuffer)
	if !ok {
		return false
	}
	mb.device.mu.Lock()
	defer mb.device.mu.Unlock()
	return mb.destroyed
}

// TextureDescriptorOf returns the descriptor a memory texture was created with.
func TextureDescriptorOf(t Texture) (TextureDescriptor, bool) {
	mt, ok := t.(*memoryTexture)
	if !ok {
		return TextureDescriptor{}, false
	}
	return mt.desc, true
}

// SamplerDescriptorOf returns the descriptor a memory sampler was created with.
func SamplerDescriptorOf(s Sampler) (SamplerDescriptor, bool) {
	ms, ok := s.(*memorySampler)
	if !ok {
		return SamplerDescriptor{}, false
	}
	return ms.desc, true
}
