package parameter

// Blade and chain scoring defaults
const (
	BladeRadius          = 6.0
	TileLinkDistance     = 12.0
	MinCluster           = 3
	ScorePerTile         = 15
	ScorePerClusterBonus = 25
	TileGoalDefault      = 1
	TileClearDelay       = 0.8 // seconds a triggered tile burns before clearing
)

// CutHistoryLimit bounds the retained severing events, most recent kept
const CutHistoryLimit = 32

// Fruit defaults
const (
	FruitLifetime     = 6.0  // seconds a whole piece survives before expiring
	FruitHalfLifetime = 1.2  // seconds a sliced half survives
	FruitHalfKick     = 90.0 // lateral separation speed given to each half
	FruitHalfSpin     = 5.0  // radians per second, opposing per half
)

// Visual easing rates for tile glow and wobble, per second
const (
	TileGlowRate    = 6.0
	TileWobbleDecay = 4.0
	TileWobbleKick  = 1.0
)
