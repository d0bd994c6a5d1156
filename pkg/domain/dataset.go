package domain

// Dataset is an ordered, immutable sequence of observed values for an
// observable. It is created once (typically by sampling a model) and never
// modified afterwards.
type Dataset struct {
	name   string
	values []float64
}

// NewDataset copies values into a new dataset.
func NewDataset(name string, values []float64) Dataset {
	v := make([]float64, len(values))
	copy(v, values)
	return Dataset{name: name, values: v}
}

// Name returns the dataset name.
func (d Dataset) Name() string { return d.name }

// Len returns the number of events.
func (d Dataset) Len() int { return len(d.values) }

// Value returns the i-th event value.
func (d Dataset) Value(i int) float64 { return d.values[i] }

// Values returns a copy of all event values.
func (d Dataset) Values() []float64 {
	v := make([]float64, len(d.values))
	copy(v, d.values)
	return v
}

// Max returns the largest event value, or 0 for an empty dataset.
func (d Dataset) Max() float64 {
	if len(d.values) == 0 {
		return 0
	}
	m := d.values[0]
	for _, v := range d.values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest event value, or 0 for an empty dataset.
func (d Dataset) Min() float64 {
	if len(d.values) == 0 {
		return 0
	}
	m := d.values[0]
	for _, v := range d.values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
