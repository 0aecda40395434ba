package component

// GroundTag marks the single kinematic ground entity.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

// SpawnedTag marks bodies created by the spawner.
type SpawnedTag struct {
	Constructor string
	Index       int
	Serial      int
}

var SpawnedTagComponent = NewComponent[SpawnedTag]()
