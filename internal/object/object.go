package object

import (
	"image/color"
	"time"
)

// Colors used by the game entities.
var (
	ColorPlayer     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorEnemy      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorProjectile = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Surface is the rendering capability the game draws onto.
// Coordinates are in viewport units.
type Surface interface {
	Width() int
	Height() int
	Clear()
	DrawCircle(x, y, r float64, c color.Color)
}

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Spawner Spawner
}

// Screen represents viewport dimensions.
type Screen struct {
	Width  int
	Height int
}

// NewScreen builds a Screen.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height}
}

// Center returns the screen center as floats.
func (s Screen) Center() (float64, float64) {
	return float64(s.Width) / 2, float64(s.Height) / 2
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one tick.
	Update(ctx UpdateContext)

	// Draw renders the object. It must not change object state.
	Draw(s Surface)
}

// Body is an object with a circular extent that takes part in collisions.
type Body interface {
	Object
	GetPosition() (float64, float64)
	GetRadius() float64
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the tick.
	// Marking an already destroyed object is a no-op.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
