package sweep

import (
	"fmt"
	"strings"
)

// Axis selects one of the local axes of a cross-section template.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "Axis(" + fmt.Sprint(int(a)) + ")"
}

// index returns the vector component index of the axis.
func (a Axis) index() int { return int(a) }

func (a Axis) valid() bool { return a >= AxisX && a <= AxisZ }

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts
// "X", "Y" or "Z" in any case.
func (a *Axis) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "X":
		*a = AxisX
	case "Y":
		*a = AxisY
	case "Z":
		*a = AxisZ
	default:
		return fmt.Errorf("invalid axis %q, want X, Y or Z", text)
	}
	return nil
}
