package twisty

// PatternBuffer applies transformations to a pattern repeatedly without
// allocating. It alternates between two preallocated patterns; the one not
// current is overwritten by the next application.
//
// A PatternBuffer is not safe for concurrent use.
type PatternBuffer struct {
	a, b       *Pattern
	aIsCurrent bool
}

// NewPatternBuffer returns a buffer whose current pattern is a copy of start.
func NewPatternBuffer(start *Pattern) *PatternBuffer {
	return &PatternBuffer{
		a:          start.Clone(),
		b:          start.Clone(),
		aIsCurrent: true,
	}
}

// ApplyTransformation replaces the current pattern with the result of
// applying t to it.
func (pb *PatternBuffer) ApplyTransformation(t *Transformation) {
	if pb.aIsCurrent {
		pb.a.ApplyTransformationInto(t, pb.b)
	} else {
		pb.b.ApplyTransformationInto(t, pb.a)
	}
	pb.aIsCurrent = !pb.aIsCurrent
}

// Current returns the current pattern. The returned value is owned by the
// buffer and changes on the next application; Clone it to keep it.
func (pb *PatternBuffer) Current() *Pattern {
	if pb.aIsCurrent {
		return pb.a
	}
	return pb.b
}

// Reset makes a copy of start the current pattern.
func (pb *PatternBuffer) Reset(start *Pattern) {
	pb.a.data.puzzle.mustMatch(start.data.puzzle)
	pb.a.data.copyFrom(&start.data)
	pb.aIsCurrent = true
}

// TransformationBuffer accumulates transformations the same way
// PatternBuffer accumulates patterns.
//
// A TransformationBuffer is not safe for concurrent use.
type TransformationBuffer struct {
	a, b       *Transformation
	aIsCurrent bool
}

// NewTransformationBuffer returns a buffer whose current transformation is a
// copy of start.
func NewTransformationBuffer(start *Transformation) *TransformationBuffer {
	return &TransformationBuffer{
		a:          start.Clone(),
		b:          start.Clone(),
		aIsCurrent: true,
	}
}

// ApplyTransformation replaces the current transformation with the current
// one followed by t.
func (tb *TransformationBuffer) ApplyTransformation(t *Transformation) {
	if tb.aIsCurrent {
		tb.a.ApplyInto(t, tb.b)
	} else {
		tb.b.ApplyInto(t, tb.a)
	}
	tb.aIsCurrent = !tb.aIsCurrent
}

// Current returns the current transformation. The returned value is owned by
// the buffer; Clone it to keep it past the next application.
func (tb *TransformationBuffer) Current() *Transformation {
	if tb.aIsCurrent {
		return tb.a
	}
	return tb.b
}
