package searcher

import (
	"craftsearch/meta"
	"math"
)

type ucb struct {
	c     float64
	logN1 float64
}

// newUCB prepares UCB1 for the children of a node visited n times.
func newUCB(c float64, n int) ucb {
	return ucb{c: c, logN1: math.Log(float64(n) + 1)}
}

// evaluate returns mean + c*sqrt(ln(N+1)/(visits+eps)). The mean of an
// unvisited child is 0.
func (u ucb) evaluate(value float64, visits int) float64 {
	mean := 0.0
	if visits > 0 {
		mean = value / float64(visits)
	}
	return mean + u.c*math.Sqrt(u.logN1/(float64(visits)+meta.EPSILON))
}
