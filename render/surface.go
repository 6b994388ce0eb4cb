package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is the paint target the compositor draws on.
type Surface interface {
	// Bounds returns the drawable area in device pixels.
	Bounds() image.Rectangle

	// Fill paints rect with a solid color.
	Fill(rect image.Rectangle, c color.Color)

	// Blit copies src scaled to fill target exactly.
	Blit(src *image.RGBA, target image.Rectangle)
}

// ImageSurface is a Surface backed by a draw.Image.
type ImageSurface struct {
	dst    draw.Image
	scaler draw.Scaler
}

// NewImageSurface wraps dst. Scaled copies use approximate bilinear
// filtering, which smooths downscaled thumbnails.
func NewImageSurface(dst draw.Image) *ImageSurface {
	return &ImageSurface{dst: dst, scaler: draw.ApproxBiLinear}
}

// NewImageSurfaceWithScaler wraps dst using a specific scaler, such as
// draw.NearestNeighbor for speed or draw.CatmullRom for quality.
func NewImageSurfaceWithScaler(dst draw.Image, scaler draw.Scaler) *ImageSurface {
	return &ImageSurface{dst: dst, scaler: scaler}
}

// Bounds returns the bounds of the underlying image.
func (s *ImageSurface) Bounds() image.Rectangle {
	return s.dst.Bounds()
}

// Fill paints rect with c.
func (s *ImageSurface) Fill(rect image.Rectangle, c color.Color) {
	draw.Draw(s.dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Blit scales src into target.
func (s *ImageSurface) Blit(src *image.RGBA, target image.Rectangle) {
	if target.Empty() || src.Rect.Empty() {
		return
	}
	s.scaler.Scale(s.dst, target, src, src.Bounds(), draw.Src, nil)
}

// Image returns the underlying image.
func (s *ImageSurface) Image() draw.Image {
	return s.dst
}

// Letterbox returns the largest rectangle with the aspect ratio of
// srcW x srcH that fits in dst, centered. It returns an empty rectangle
// when either side is empty.
func Letterbox(srcW, srcH int, dst image.Rectangle) image.Rectangle {
	dw, dh := dst.Dx(), dst.Dy()
	if srcW <= 0 || srcH <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{}
	}

	w, h := dw, dh
	if srcW*dh >= srcH*dw {
		h = srcH * dw / srcW
	} else {
		w = srcW * dh / srcH
	}

	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// isotropicScale returns the device pixels per logical unit when a
// logicalW x logicalH extent is mapped onto viewport preserving aspect ratio.
func isotropicScale(logicalW, logicalH int, viewport image.Rectangle) float64 {
	sx := float64(viewport.Dx()) / float64(logicalW)
	sy := float64(viewport.Dy()) / float64(logicalH)
	if sx < sy {
		return sx
	}
	return sy
}
