package d2

import "gonum.org/v1/gonum/spatial/r2"

// Set is a closed polygon or point cloud.
type Set []r2.Vec

// SignedArea returns the area enclosed by the closed polygon a. It is
// positive for counter-clockwise vertex order.
func (a Set) SignedArea() float64 {
	sum := 0.0
	for i := range a {
		sum += r2.Cross(a[i], a[(i+1)%len(a)])
	}
	return sum / 2
}

// Reverse reverses the vertex order of a in place.
func (a Set) Reverse() {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// Perimeter returns the cumulative length of the closed polygon a at every
// vertex. The result has len(a)+1 elements, the last being the perimeter.
func (a Set) Perimeter() []float64 {
	arc := make([]float64, len(a)+1)
	for i := range a {
		arc[i+1] = arc[i] + r2.Norm(r2.Sub(a[(i+1)%len(a)], a[i]))
	}
	return arc
}
