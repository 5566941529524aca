package control

// LowPass is a first order low pass filter with time constant Tau sampled
// every Ts seconds.
type LowPass struct {
	a, b  float64
	last  float64
	ready bool
}

func NewLowPass(tau, ts float64) LowPass {
	if ts <= 0 {
		return LowPass{a: 1}
	}
	ratio := tau / ts
	return LowPass{
		a: 1 / (ratio + 1),
		b: ratio / (ratio + 1),
	}
}

func (l *LowPass) Filter(val float64) float64 {
	if l.ready {
		val = l.a*val + l.b*l.last
	} else {
		l.ready = true
	}
	l.last = val
	return val
}

func (l *LowPass) Get() float64 {
	return l.last
}

func (l *LowPass) Reset() {
	l.last = 0
	l.ready = false
}
