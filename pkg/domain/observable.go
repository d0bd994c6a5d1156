package domain

// Observable is a scalar variable with a fixed closed range [Lo, Hi]
// representing its physically allowed values. The range is immutable after
// construction; only the model evaluates the observable at concrete points.
type Observable struct {
	Name string
	Lo   float64
	Hi   float64
}

// NewObservable creates an observable over [lo, hi].
func NewObservable(name string, lo, hi float64) Observable {
	return Observable{Name: name, Lo: lo, Hi: hi}
}

// Contains reports whether x lies inside the observable's closed range.
func (o Observable) Contains(x float64) bool {
	return x >= o.Lo && x <= o.Hi
}

// Width returns the length of the observable's range.
func (o Observable) Width() float64 {
	return o.Hi - o.Lo
}
