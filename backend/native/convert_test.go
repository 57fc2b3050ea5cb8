//go:build !nogpu

package native

import (
	"testing"

	types "github.com/gogpu/gputypes"

	"github.com/duskforge/render"
)

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		format render.PixelFormat
		want   types.TextureFormat
	}{
		{render.PixelFormatRGBA8, types.TextureFormatRGBA8Unorm},
		{render.PixelFormatBGRA8, types.TextureFormatBGRA8Unorm},
		{render.PixelFormatR8, types.TextureFormatR8Unorm},
	}
	for _, tt := range tests {
		if got := textureFormat(tt.format); got != tt.want {
			t.Errorf("textureFormat(%v) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		format render.PixelFormat
		want   uint32
	}{
		{render.PixelFormatRGBA8, 4},
		{render.PixelFormatBGRA8, 4},
		{render.PixelFormatR8, 1},
	}
	for _, tt := range tests {
		if got := bytesPerPixel(tt.format); got != tt.want {
			t.Errorf("bytesPerPixel(%v) = %d, want %d", tt.format, got, tt.want)
		}
	}
}
