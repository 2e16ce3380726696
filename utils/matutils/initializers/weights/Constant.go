package weights

// ConstantUV implements the distuv.Rander interface so that constant
// initialization can be accomplished through the initialization
// structs which take a distuv.Rander argument
type ConstantUV struct {
	value float64
}

// NewConstantUV returns a new ConstantUV
func NewConstantUV(value float64) ConstantUV {
	return ConstantUV{value}
}

// Rand draws a random number from the interval [value, value]
func (c ConstantUV) Rand() float64 {
	return c.value
}

// NewConstant returns an Initializer that sets every action value to
// value
func NewConstant(value float64) RandUV {
	return NewRandUV(NewConstantUV(value))
}

// NewZero returns an Initializer that sets every action value to 0
func NewZero() RandUV {
	return NewConstant(0.0)
}
