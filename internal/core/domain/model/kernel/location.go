package kernel

import (
	"fmt"

	"ups/internal/pkg/errs"
	"ups/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when validating a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or Origin")

// Location is an immutable point on the world grid. The world grid is unbounded,
// so any pair of coordinates is accepted; the zero value is still invalid to catch
// locations that were never set.
//
// Example:
//
//	loc := kernel.NewLocation(5, 7)
//	fmt.Println(loc) // (5,7)
type Location struct {
	x     int32
	y     int32
	guard guard.ConstructorGuard
}

// NewLocation creates a Location at (x, y).
func NewLocation(x, y int32) Location {
	return Location{x: x, y: y, guard: guard.NewConstructorGuard()}
}

// Origin returns the location every truck starts from.
func Origin() Location {
	return NewLocation(0, 0)
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the horizontal coordinate.
func (l Location) X() int32 {
	return l.x
}

// Y returns the vertical coordinate.
func (l Location) Y() int32 {
	return l.y
}

// Equals compares coordinates only.
func (l Location) Equals(other Location) bool {
	return l.x == other.x && l.y == other.y
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.x, l.y)
}
