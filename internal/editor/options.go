package editor

// Options are the tunables of one editor.
type Options struct {
	GridSize   float64 // cell size in model units; 1 or less disables snapping
	Tolerance  float64 // handle hit distance in device pixels
	MinDrag    float64 // device pixels before a press becomes a drag
	Width      float64 // permitted region; zero leaves an axis unbounded
	Height     float64
	PixelRatio float64
	ZoomMin    float64
	ZoomMax    float64
	ZoomStep   float64
}

// DefaultOptions match the defaults of the configuration layer.
func DefaultOptions() Options {
	return Options{
		GridSize:   8,
		Tolerance:  4,
		MinDrag:    2,
		Width:      1280,
		Height:     720,
		PixelRatio: 1,
		ZoomMin:    0.25,
		ZoomMax:    4,
		ZoomStep:   0.1,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.PixelRatio <= 0 {
		o.PixelRatio = d.PixelRatio
	}
	if o.ZoomMin <= 0 {
		o.ZoomMin = d.ZoomMin
	}
	if o.ZoomMax <= 0 {
		o.ZoomMax = d.ZoomMax
	}
	if o.ZoomMax < o.ZoomMin {
		o.ZoomMax = o.ZoomMin
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = d.ZoomStep
	}
	if o.GridSize < 1 {
		o.GridSize = 1
	}
	return o
}
