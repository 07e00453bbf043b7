//go:build !nogpu

package gpu

import "testing"

func TestRectPipelineCreate(t *testing.T) {
	device, queue := createNoopDevice(t)

	p := newRectPipeline(device, queue)
	if err := p.create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	defer p.destroy()

	if p.shader == nil {
		t.Error("shader is nil")
	}
	if p.frameLayout == nil || p.poolLayout == nil {
		t.Error("bind group layout is nil")
	}
	if p.pipeLayout == nil {
		t.Error("pipeline layout is nil")
	}
	if p.sampler == nil {
		t.Error("sampler is nil")
	}
	if p.pipeline == nil {
		t.Error("render pipeline is nil")
	}
}

func TestRectPipelineDestroyIdempotent(t *testing.T) {
	device, queue := createNoopDevice(t)

	p := newRectPipeline(device, queue)
	if err := p.create(); err != nil {
		t.Fatalf("create: %v", err)
	}
	p.destroy()
	p.destroy()

	if p.pipeline != nil || p.shader != nil {
		t.Error("destroy left resources behind")
	}
}
