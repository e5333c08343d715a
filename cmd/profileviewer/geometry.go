package main

import "fyne.io/fyne/v2"

// containRect is where an image drawn with canvas.ImageFillContain lands inside its view.
type containRect struct {
	X, Y, W, H float32
	// Scale maps image pixels to view pixels.
	Scale float32
}

// computeContainRect fits an imgW x imgH image into a viewW x viewH view, keeping the aspect
// ratio and centering it. A zero-sized image maps 1:1 onto the view.
func computeContainRect(imgW, imgH, viewW, viewH float32) containRect {
	if imgW <= 0 || imgH <= 0 {
		return containRect{W: viewW, H: viewH, Scale: 1}
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale := sx
	if sy < sx {
		scale = sy
	}
	w := imgW * scale
	h := imgH * scale
	return containRect{X: (viewW - w) / 2, Y: (viewH - h) / 2, W: w, H: h, Scale: scale}
}

func (r containRect) contains(p fyne.Position) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// toImage maps a view position to image pixels.
func (r containRect) toImage(p fyne.Position) (float64, float64) {
	if r.Scale <= 0 {
		return 0, 0
	}
	return float64((p.X - r.X) / r.Scale), float64((p.Y - r.Y) / r.Scale)
}

// toView maps image pixels back to a view position.
func (r containRect) toView(x, y float64) fyne.Position {
	return fyne.NewPos(r.X+float32(x)*r.Scale, r.Y+float32(y)*r.Scale)
}
