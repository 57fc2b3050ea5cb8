package render

import (
	"testing"

	"cogentcore.org/core/math32"

	"github.com/duskforge/render/cmdbuf"
)

func TestRenderContextDefaults(t *testing.T) {
	ctx := newRenderContext(1024, 256, 16)

	for i := range ctx.layers {
		l := &ctx.layers[i]
		if l.Clear != 0 {
			t.Errorf("layer %d Clear = %v, want 0", i, l.Clear)
		}
		if l.ClearDepth != 1 {
			t.Errorf("layer %d ClearDepth = %v, want 1", i, l.ClearDepth)
		}
		if l.View != *math32.Identity4() {
			t.Errorf("layer %d View is not identity", i)
		}
		if l.HasTarget {
			t.Errorf("layer %d HasTarget = true, want false", i)
		}
	}
	if ctx.state.indexCount != maxIndexRange {
		t.Errorf("default indexCount = %d, want full range", ctx.state.indexCount)
	}
}

func TestCommitCapturesState(t *testing.T) {
	ctx := newRenderContext(1024, 256, 16)

	ctx.state.flags = 0xF00D
	ctx.state.program = 3
	ctx.state.hasProgram = true
	ctx.state.vertexBuffer = 5
	ctx.state.hasVertexBuffer = true
	ctx.commit(2)

	// Later state changes must not leak into the committed draw.
	ctx.state.flags = 0

	if len(ctx.draws) != 1 {
		t.Fatalf("len(draws) = %d, want 1", len(ctx.draws))
	}
	d := ctx.draws[0]
	if d.Layer != 2 {
		t.Errorf("Layer = %d, want 2", d.Layer)
	}
	if d.Flags != 0xF00D {
		t.Errorf("Flags = %#x, want 0xF00D", d.Flags)
	}
	if !d.HasProgram || d.Program != 3 {
		t.Errorf("Program = (%d, %v), want (3, true)", d.Program, d.HasProgram)
	}
	if !d.HasVertexBuffer || d.VertexBuffer != 5 {
		t.Errorf("VertexBuffer = (%d, %v), want (5, true)", d.VertexBuffer, d.HasVertexBuffer)
	}
}

func TestCommitLayerOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("commit on out-of-range layer did not panic")
		}
	}()
	newRenderContext(1024, 256, 16).commit(MaxLayers)
}

func TestCommitDrawBudgetPanics(t *testing.T) {
	ctx := newRenderContext(1024, 256, 2)
	ctx.commit(0)
	ctx.commit(0)

	defer func() {
		if recover() == nil {
			t.Error("commit past the draw budget did not panic")
		}
	}()
	ctx.commit(0)
}

func TestResetRestoresDefaults(t *testing.T) {
	ctx := newRenderContext(1024, 256, 16)

	ctx.commands.WriteOp(cmdbuf.OpCreateTexture)
	ctx.constants.Write(0, 1, []byte{1, 2, 3, 4})
	ctx.layers[1].Clear = ClearColor
	ctx.state.flags = 1
	ctx.commit(0)

	ctx.reset()

	if ctx.commands.Len() != 0 || ctx.constants.Len() != 0 {
		t.Error("reset did not clear the streams")
	}
	if ctx.layers[1].Clear != 0 {
		t.Error("reset did not restore default layer state")
	}
	if len(ctx.draws) != 0 {
		t.Errorf("len(draws) after reset = %d, want 0", len(ctx.draws))
	}
	if ctx.state.flags != 0 {
		t.Error("reset did not restore default draw state")
	}
}

func TestFrameViewAliasesDraws(t *testing.T) {
	ctx := newRenderContext(1024, 256, 16)
	ctx.commit(1)
	ctx.commit(4)

	f := ctx.frame()
	if len(f.Draws) != 2 {
		t.Fatalf("len(Draws) = %d, want 2", len(f.Draws))
	}
	if f.Draws[0].Layer != 1 || f.Draws[1].Layer != 4 {
		t.Errorf("Draws layers = (%d, %d), want (1, 4)", f.Draws[0].Layer, f.Draws[1].Layer)
	}
}
