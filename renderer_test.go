package render_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/duskforge/render"
	"github.com/duskforge/render/backend/trace"
	"github.com/duskforge/render/idtable"
)

func newTestRenderer(t *testing.T, opts ...render.Option) (*render.Renderer, *trace.Dispatcher) {
	t.Helper()
	d := trace.New()
	r := render.New(d, opts...)
	r.Init()
	return r, d
}

func triangleVertices() []byte {
	verts := []float32{
		0, 0.5, 0,
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
	}
	buf := make([]byte, len(verts)*4)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func TestInitShutdownLifecycle(t *testing.T) {
	d := trace.New()
	r := render.New(d)

	r.Init()
	if !d.Initialized() {
		t.Error("backend not initialized after Init")
	}

	r.Shutdown()
	if d.Initialized() {
		t.Error("backend still initialized after Shutdown")
	}

	calls := d.Calls()
	if len(calls) == 0 || calls[0].Op != "Init" {
		t.Fatalf("first backend call = %v, want Init", calls)
	}
	if calls[len(calls)-1].Op != "Shutdown" {
		t.Errorf("last backend call = %q, want Shutdown", calls[len(calls)-1].Op)
	}
}

func TestUseBeforeInitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("encode call before Init did not panic")
		}
	}()
	render.New(trace.New()).SetState(1)
}

func TestCommandsDeferredUntilFrame(t *testing.T) {
	r, d := newTestRenderer(t)
	defer r.Shutdown()

	before := len(d.Calls())
	if _, err := r.CreateVertexBuffer(3, render.VertexFormatPosition, triangleVertices()); err != nil {
		t.Fatal(err)
	}
	if got := len(d.Calls()); got != before {
		t.Errorf("backend saw %d calls before Frame, want %d", got, before)
	}

	r.Frame()
	if got := d.CallsTo("CreateVertexBuffer"); len(got) != 1 {
		t.Errorf("CreateVertexBuffer calls after Frame = %d, want 1", len(got))
	}
}

func TestFrameDeliversDraw(t *testing.T) {
	r, d := newTestRenderer(t)
	defer r.Shutdown()

	vb, err := r.CreateVertexBuffer(3, render.VertexFormatPosition, triangleVertices())
	if err != nil {
		t.Fatal(err)
	}
	indices := []byte{0, 0, 1, 0, 2, 0}
	ib, err := r.CreateIndexBuffer(3, indices)
	if err != nil {
		t.Fatal(err)
	}
	vs, err := r.CreateShader(render.ShaderStageVertex, "@vertex fn vs() {}")
	if err != nil {
		t.Fatal(err)
	}
	fs, err := r.CreateShader(render.ShaderStageFragment, "@fragment fn fs() {}")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := r.CreateProgram(vs, fs)
	if err != nil {
		t.Fatal(err)
	}

	r.SetLayerClear(0, render.ClearColor|render.ClearDepth, render.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}, 1)
	r.SetProgram(prog)
	r.SetVertexBuffer(vb)
	r.SetIndexBuffer(ib)
	r.Commit(0)
	r.Frame()

	renders := d.CallsTo("Render")
	if len(renders) != 2 { // init frame + this frame
		t.Fatalf("Render calls = %d, want 2", len(renders))
	}
	draws := renders[1].Args[1].([]render.DrawCall)
	if len(draws) != 1 {
		t.Fatalf("draws in second frame = %d, want 1", len(draws))
	}
	dc := draws[0]
	if dc.Layer != 0 || !dc.HasProgram || dc.Program != prog {
		t.Errorf("draw = %+v, want layer 0 with program %d", dc, prog)
	}
	if !dc.HasVertexBuffer || dc.VertexBuffer != vb {
		t.Errorf("draw vertex buffer = (%d, %v), want (%d, true)", dc.VertexBuffer, dc.HasVertexBuffer, vb)
	}
	if !dc.HasIndexBuffer || dc.IndexBuffer != ib {
		t.Errorf("draw index buffer = (%d, %v), want (%d, true)", dc.IndexBuffer, dc.HasIndexBuffer, ib)
	}

	layers := renders[1].Args[0].([render.MaxLayers]render.LayerState)
	if layers[0].Clear != render.ClearColor|render.ClearDepth {
		t.Errorf("layer 0 clear = %v, want color|depth", layers[0].Clear)
	}

	data := d.CallsTo("CreateVertexBuffer")[0].Args[3].([]byte)
	if !bytes.Equal(data, triangleVertices()) {
		t.Error("vertex data did not round-trip through the command stream")
	}
}

func TestCommitCarriesPoseStateAndRange(t *testing.T) {
	r, d := newTestRenderer(t)
	defer r.Shutdown()

	vb, err := r.CreateVertexBuffer(3, render.VertexFormatPosition, triangleVertices())
	if err != nil {
		t.Fatal(err)
	}
	ib, err := r.CreateIndexBuffer(3, []byte{0, 0, 1, 0, 2, 0})
	if err != nil {
		t.Fatal(err)
	}

	var pose math32.Matrix4
	pose.SetRotationY(0.5)

	r.SetState(0x0102030405060708)
	r.SetPose(pose)
	r.SetVertexBuffer(vb)
	r.SetIndexBufferRange(ib, 1, 2)
	r.Commit(3)
	r.Frame()

	renders := d.CallsTo("Render")
	draws := renders[len(renders)-1].Args[1].([]render.DrawCall)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	dc := draws[0]
	if dc.Layer != 3 {
		t.Errorf("Layer = %d, want 3", dc.Layer)
	}
	if dc.Flags != 0x0102030405060708 {
		t.Errorf("Flags = %#x, want 0x0102030405060708", dc.Flags)
	}
	if dc.Pose != pose {
		t.Error("Pose did not ride the commit record")
	}
	if dc.IndexStart != 1 || dc.IndexCount != 2 {
		t.Errorf("index range = (%d, %d), want (1, 2)", dc.IndexStart, dc.IndexCount)
	}
}

func TestUniformUpdateRoundTrip(t *testing.T) {
	r, d := newTestRenderer(t)
	defer r.Shutdown()

	u, err := r.CreateUniform("u_tint", render.UniformTypeVec4, 1)
	if err != nil {
		t.Fatal(err)
	}
	val := make([]byte, 16)
	binary.LittleEndian.PutUint32(val, math.Float32bits(0.25))
	r.SetUniform(u, render.UniformTypeVec4, val)
	r.Frame()

	updates := d.CallsTo("UpdateUniform")
	if len(updates) != 1 {
		t.Fatalf("UpdateUniform calls = %d, want 1", len(updates))
	}
	if got := updates[0].Args[0].(render.UniformID); got != u {
		t.Errorf("UpdateUniform id = %d, want %d", got, u)
	}
	if got := updates[0].Args[2].([]byte); !bytes.Equal(got, val) {
		t.Error("uniform bytes did not round-trip through the constant stream")
	}
}

func TestCreateUniformStockNamePanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer r.Shutdown()

	defer func() {
		if recover() == nil {
			t.Error("CreateUniform with a stock name did not panic")
		}
	}()
	r.CreateUniform("u_view", render.UniformTypeMat4, 1)
}

func TestCreateUniformLongNamePanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer r.Shutdown()

	name := make([]byte, render.MaxUniformNameLength)
	for i := range name {
		name[i] = 'a'
	}

	defer func() {
		if recover() == nil {
			t.Error("CreateUniform with an oversized name did not panic")
		}
	}()
	r.CreateUniform(string(name), render.UniformTypeFloat, 1)
}

func TestCapacityExhaustedReturnsError(t *testing.T) {
	r, _ := newTestRenderer(t, render.WithMaxTextures(1))
	defer r.Shutdown()

	if _, err := r.CreateTexture(4, 4, render.PixelFormatRGBA8, nil); err != nil {
		t.Fatal(err)
	}
	_, err := r.CreateTexture(4, 4, render.PixelFormatRGBA8, nil)
	if !errors.Is(err, idtable.ErrCapacity) {
		t.Errorf("second CreateTexture error = %v, want ErrCapacity", err)
	}
}

func TestHandleReuseAfterDestroy(t *testing.T) {
	r, d := newTestRenderer(t)
	defer r.Shutdown()

	a, err := r.CreateTexture(4, 4, render.PixelFormatRGBA8, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.DestroyTexture(a)
	b, err := r.CreateTexture(8, 8, render.PixelFormatRGBA8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b != a {
		t.Errorf("handle after destroy = %d, want reused %d", b, a)
	}

	r.Frame()

	// The backend must see create, destroy, create in encode order even
	// though the handle value repeats.
	var ops []string
	for _, c := range d.Calls() {
		switch c.Op {
		case "CreateTexture", "DestroyTexture":
			ops = append(ops, c.Op)
		}
	}
	want := []string{"CreateTexture", "DestroyTexture", "CreateTexture"}
	if len(ops) != len(want) {
		t.Fatalf("texture ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("texture ops = %v, want %v", ops, want)
		}
	}
}

func TestSetVertexBufferUnknownPanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer r.Shutdown()

	defer func() {
		if recover() == nil {
			t.Error("SetVertexBuffer with unknown handle did not panic")
		}
	}()
	r.SetVertexBuffer(render.VertexBufferID(123))
}

func TestSetTextureUnitOutOfRangePanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer r.Shutdown()

	defer func() {
		if recover() == nil {
			t.Error("SetTexture with out-of-range unit did not panic")
		}
	}()
	r.SetTexture(render.MaxTextureUnits, 0, 0, 0)
}

func TestStats(t *testing.T) {
	r, _ := newTestRenderer(t)
	defer r.Shutdown()

	if got := r.Stats().Frames; got != 1 { // init frame
		t.Fatalf("Frames after Init = %d, want 1", got)
	}

	if _, err := r.CreateVertexBuffer(3, render.VertexFormatPosition, triangleVertices()); err != nil {
		t.Fatal(err)
	}
	r.Commit(0)
	r.Frame()

	s := r.Stats()
	if s.Frames != 2 {
		t.Errorf("Frames = %d, want 2", s.Frames)
	}
	if s.LastCommands != 1 {
		t.Errorf("LastCommands = %d, want 1", s.LastCommands)
	}
	if s.LastDraws != 1 {
		t.Errorf("LastDraws = %d, want 1", s.LastDraws)
	}
}

func TestManyFrames(t *testing.T) {
	r, d := newTestRenderer(t)

	vb, err := r.CreateVertexBuffer(3, render.VertexFormatPosition, triangleVertices())
	if err != nil {
		t.Fatal(err)
	}
	r.Frame()

	const frames = 100
	for i := 0; i < frames; i++ {
		r.SetVertexBuffer(vb)
		r.Commit(0)
		r.Commit(1)
		r.Frame()
	}
	r.Shutdown()

	renders := d.CallsTo("Render")
	// Init frame + vertex buffer frame + the loop frames. The shutdown
	// frame tears the backend down before the render step, so it does not
	// produce a Render call.
	if len(renders) != frames+2 {
		t.Fatalf("Render calls = %d, want %d", len(renders), frames+2)
	}
	for _, c := range renders[2 : frames+2] {
		if draws := c.Args[1].([]render.DrawCall); len(draws) != 2 {
			t.Fatalf("draws per loop frame = %d, want 2", len(draws))
		}
	}
}
