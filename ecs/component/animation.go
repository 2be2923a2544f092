package component

// AnimationDef is a run of consecutive sprite-sheet frames.
type AnimationDef struct {
	Name       string
	ColStart   int // start frame in the sheet
	FrameCount int
	FPS        float64
	Loop       bool
}

type Animation struct {
	Sheet      string
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
