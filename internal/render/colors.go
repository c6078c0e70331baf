package render

import "image/color"

// Palette colors shared by the compositor overlays and the viewer.
var (
	ColorBackground    = color.RGBA{10, 10, 15, 255}
	ColorAttackRange   = color.RGBA{255, 60, 60, 48}
	ColorAttackBorder  = color.RGBA{255, 60, 60, 200}
	ColorLabel         = color.RGBA{240, 240, 200, 255}
	ColorStatus        = color.RGBA{200, 200, 200, 255}
	ColorPlaceholder   = color.RGBA{255, 0, 255, 255}
	ColorMarkerHome    = color.RGBA{80, 200, 255, 160}
	ColorMarkerRoad    = color.RGBA{230, 200, 80, 140}
	ColorMarkerCross   = color.RGBA{255, 120, 40, 180}
	ColorMarkerArrow   = color.RGBA{140, 255, 140, 170}
	ColorMarkerPortal  = color.RGBA{200, 100, 255, 170}
	ColorMarkerDefault = color.RGBA{200, 200, 200, 120}
)
