// Package tabletop is a pointer-picking and card-interaction library for 3D
// tabletop scenes.
//
// Once per simulation tick, a [RayDispatcher] casts a single ray from the
// camera through the latest pointer position, asks a [CollisionOracle] for the
// closest collider, and hands the hit to the object that owns it. An owner
// that declines the hit lets the ray continue past its collider. After every
// dispatch cycle the ray-processed callbacks fire, and each [Card] reconciles
// its hover state against whether it was hit during that cycle.
//
// # Quick start
//
// A [Table] wires the pieces together: a [Space] of colliders, a [Camera],
// the dispatcher and the cards.
//
//	cam := tabletop.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, tabletop.Rect{Width: 640, Height: 480})
//	table := tabletop.NewTable(cam, tabletop.TableConfig{})
//
//	ace := table.NewCard("ace", 0.63, 0.88)
//	ace.OnEnter(func() { fmt.Println("hover", ace.Name) })
//
// Inside an [ebiten.Game], poll input and advance the table each frame:
//
//	func (g *Game) Update() error {
//		g.table.PollInput()
//		g.table.Update(1.0 / 60)
//		return nil
//	}
//
// # Card behaviour
//
// A card lifts along its facing direction when the pointer enters it and
// drops back when it leaves. While hovered it leans toward the pointer. A
// primary press while hovered picks it up; while held it follows the pointer
// laterally and rolls with horizontal motion. When the pointer leaves a tilted
// card, its rotation animates back to rest (via [gween]). Each response is a
// toggle on [CardConfig].
//
// # Ticks
//
// [Table.Simulate] runs the dispatch cycle and [Table.Present] advances
// animations. Pointer motion is buffered: many motion events between two ticks
// produce a single ray for the latest position, and a tick with no motion does
// nothing at all.
//
// # Testing
//
// [Table.InjectMove], [Table.InjectClick] and [Table.InjectDrag] queue
// synthetic pointer events consumed one per tick. [LoadTestScript] reads the
// same actions from JSON.
//
// [gween]: https://github.com/tanema/gween
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package tabletop
