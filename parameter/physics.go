package parameter

// Rope solver defaults
const (
	RopeGravityY      = 780.0
	RopeDamping       = 0.02 // velocity loss coefficient per second
	RopeDrag          = 0.0
	RopeStiffness     = 1.0
	RopeIterations    = 4
	RopeIterationsMin = 1
	RopeIterationsMax = 24
	RopePointRadius   = 2.0
	RopeBoundsBounce  = 0.3 // velocity fraction kept when a point reflects off bounds
	RopeFadeDuration  = 0.5 // seconds a severed link stays visible while fading
	RopeSegmentsMin   = 1
)

// Rigid body field defaults
const (
	BodyGravityY     = 800.0
	FieldSubsteps    = 4
	SubstepsMin      = 1
	SubstepsMax      = 12
	BodyRadiusMin    = 0.5
	BodyMassMin      = 0.001
	WallThicknessMin = 0.5
)
