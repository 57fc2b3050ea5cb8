//go:build !nogpu

package native

import (
	"fmt"

	types "github.com/gogpu/gputypes"

	"github.com/duskforge/render"
)

// textureFormat converts a render.PixelFormat to the hal texture format.
func textureFormat(format render.PixelFormat) types.TextureFormat {
	switch format {
	case render.PixelFormatRGBA8:
		return types.TextureFormatRGBA8Unorm
	case render.PixelFormatBGRA8:
		return types.TextureFormatBGRA8Unorm
	case render.PixelFormatR8:
		return types.TextureFormatR8Unorm
	default:
		panic(fmt.Sprintf("native: unsupported pixel format %v", format))
	}
}

// bytesPerPixel returns the pixel stride of a render.PixelFormat.
func bytesPerPixel(format render.PixelFormat) uint32 {
	switch format {
	case render.PixelFormatRGBA8, render.PixelFormatBGRA8:
		return 4
	case render.PixelFormatR8:
		return 1
	default:
		panic(fmt.Sprintf("native: unsupported pixel format %v", format))
	}
}
