package mandel

import "strconv"

// Complex is an immutable complex number. All operations return new values.
type Complex struct {
	Re, Im float64
}

// C is shorthand for Complex{Re: re, Im: im}.
func C(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Add returns c + d.
func (c Complex) Add(d Complex) Complex {
	return Complex{Re: c.Re + d.Re, Im: c.Im + d.Im}
}

// Mul returns c * d.
func (c Complex) Mul(d Complex) Complex {
	return Complex{
		Re: c.Re*d.Re - c.Im*d.Im,
		Im: c.Re*d.Im + c.Im*d.Re,
	}
}

// Square returns c * c.
func (c Complex) Square() Complex {
	return c.Mul(c)
}

// AbsSq returns the squared magnitude |c|².
func (c Complex) AbsSq() float64 {
	return c.Re*c.Re + c.Im*c.Im
}

// String formats c as "re+imi".
func (c Complex) String() string {
	im := strconv.FormatFloat(c.Im, 'g', -1, 64)
	if c.Im >= 0 {
		im = "+" + im
	}
	return strconv.FormatFloat(c.Re, 'g', -1, 64) + im + "i"
}
