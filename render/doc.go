// Package render implements the thread-safe video frame pipeline that sits
// between a frame producer and the UI goroutine's paint handler.
//
// # Pipeline
//
// A [Renderer] is registered as the sink of one [interfaces.FrameSource]:
//
//	redraw := render.NewRedrawSignal()
//	local := render.NewRenderer("local", redraw)
//	if err := local.Attach(track); err != nil {
//	    return err
//	}
//	defer local.Detach()
//
// Every frame the producer delivers is validated, rotated upright, converted
// once to RGBA and stored in the renderer's [FrameBuffer], replacing the
// previous frame. Frames are never queued: the latest frame wins. After the
// store the renderer asks for a redraw through its [Invalidator]; a
// [RedrawSignal] collapses any number of such requests into one pending
// repaint.
//
// # Painting
//
// The paint handler reads a renderer with [Renderer.Snapshot], which holds
// the renderer's lock only while the caller copies the pixels out. A
// [Compositor] uses this to draw the remote frame letterboxed across the
// client area and the local frame as a thumbnail, onto any [Surface].
// [ImageSurface] adapts a draw.Image using golang.org/x/image/draw.
//
// # Concurrency
//
// Each renderer owns exactly one mutex; the local and remote renderers never
// share a lock. The producer and the painter block each other only for the
// duration of one conversion or one copy.
package render
