package render

import (
	"image"
	"image/color"
)

// DefaultThumbnailMargin is the gap, in logical pixels, between the local
// thumbnail and the bottom-right corner of the client area.
const DefaultThumbnailMargin = 10

// Compositor paints the streaming view: the remote frame letterboxed over
// the client area and the local frame as a half-size thumbnail.
type Compositor struct {
	Background      color.Color
	ThumbnailMargin int
}

// NewCompositor returns a compositor with a black background.
func NewCompositor() *Compositor {
	return &Compositor{
		Background:      color.Black,
		ThumbnailMargin: DefaultThumbnailMargin,
	}
}

// Paint draws remote and local onto surface within client. Either renderer
// may be nil or have no frame yet. The frame that defines the isotropic
// mapping is the remote one when present, the local one otherwise; the
// thumbnail is sized and placed in that mapping's logical units.
//
// Each renderer's lock is held only while its own pixels are copied.
func (c *Compositor) Paint(surface Surface, client image.Rectangle, remote, local *Renderer) {
	surface.Fill(client, c.Background)
	if client.Empty() {
		return
	}

	refW, refH := 0, 0
	if remote != nil {
		remote.Snapshot(func(img *image.RGBA) {
			refW, refH = img.Rect.Dx(), img.Rect.Dy()
			surface.Blit(img, Letterbox(refW, refH, client))
		})
	}

	if local == nil {
		return
	}
	local.Snapshot(func(img *image.RGBA) {
		w, h := img.Rect.Dx(), img.Rect.Dy()
		if refW == 0 || refH == 0 {
			refW, refH = w, h
		}
		surface.Blit(img, c.thumbnailRect(w, h, refW, refH, client))
	})
}

// thumbnailRect places a (w/2) x (h/2) logical rectangle at the bottom-right
// of the logical area, margin units from both edges, and maps it to device
// pixels.
func (c *Compositor) thumbnailRect(w, h, refW, refH int, client image.Rectangle) image.Rectangle {
	scale := isotropicScale(refW, refH, client)
	thumbW := int(float64(w/2) * scale)
	thumbH := int(float64(h/2) * scale)
	margin := int(float64(c.ThumbnailMargin) * scale)

	x := client.Max.X - thumbW - margin
	y := client.Max.Y - thumbH - margin
	return image.Rect(x, y, x+thumbW, y+thumbH).Intersect(client)
}
