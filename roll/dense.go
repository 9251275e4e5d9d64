package roll

// Kind names one annotation channel. Shapes are fixed per kind: notes
// and onsets carry one bin per semitone, contours carry three.
type Kind string

const (
	KindNotes    Kind = "notes"
	KindOnsets   Kind = "onsets"
	KindContours Kind = "contours"
)

// DenseMatrix is a row-major (frames x bins) activation matrix with
// values in [0,1].
type DenseMatrix struct {
	Frames int
	Bins   int
	Data   []float32
}

func NewDenseMatrix(frames, bins int) DenseMatrix {
	return DenseMatrix{
		Frames: frames,
		Bins:   bins,
		Data:   make([]float32, frames*bins),
	}
}

func (m DenseMatrix) At(frame, bin int) float32 {
	return m.Data[frame*m.Bins+bin]
}

func (m *DenseMatrix) Set(frame, bin int, v float32) {
	m.Data[frame*m.Bins+bin] = v
}

func (m DenseMatrix) SameShape(o DenseMatrix) bool {
	return m.Frames == o.Frames && m.Bins == o.Bins
}
