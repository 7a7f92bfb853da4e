// Package render defines the boundary between the game loop and the
// graphics backends. The loop only talks to SceneRenderer and Game; the
// ebiten and terminal subpackages implement Engine.
package render
