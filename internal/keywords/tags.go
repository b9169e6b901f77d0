package keywords

// ActionTag names what the character is doing.
type ActionTag string

const (
	ActionDance   ActionTag = "dance"
	ActionRun     ActionTag = "run"
	ActionJump    ActionTag = "jump"
	ActionFight   ActionTag = "fight"
	ActionSing    ActionTag = "sing"
	ActionCook    ActionTag = "cook"
	ActionStudy   ActionTag = "study"
	ActionSleep   ActionTag = "sleep"
	ActionWork    ActionTag = "work"
	ActionPlay    ActionTag = "play"
	ActionEat     ActionTag = "eat"
	ActionDrink   ActionTag = "drink"
	ActionWalk    ActionTag = "walk"
	ActionSwim    ActionTag = "swim"
	ActionDrive   ActionTag = "drive"
	ActionSit     ActionTag = "sit"
	ActionGeneric ActionTag = "generic"
	ActionDefault ActionTag = "default"
)

// EnvironmentTag names where the scene happens.
type EnvironmentTag string

const (
	EnvRain     EnvironmentTag = "rain"
	EnvNight    EnvironmentTag = "night"
	EnvDay      EnvironmentTag = "day"
	EnvCity     EnvironmentTag = "city"
	EnvSchool   EnvironmentTag = "school"
	EnvForest   EnvironmentTag = "forest"
	EnvBeach    EnvironmentTag = "beach"
	EnvMountain EnvironmentTag = "mountain"
	EnvHome     EnvironmentTag = "home"
	EnvPark     EnvironmentTag = "park"
	EnvDefault  EnvironmentTag = "default"

	// EnvSleep is never matched by keywords. It marks the bedroom setting
	// selected when the sleep action is present.
	EnvSleep EnvironmentTag = "sleep"
)

var knownActions = map[ActionTag]struct{}{
	ActionDance: {}, ActionRun: {}, ActionJump: {}, ActionFight: {}, ActionSing: {},
	ActionCook: {}, ActionStudy: {}, ActionSleep: {}, ActionWork: {}, ActionPlay: {},
	ActionEat: {}, ActionDrink: {}, ActionWalk: {}, ActionSwim: {}, ActionDrive: {},
	ActionSit: {}, ActionGeneric: {}, ActionDefault: {},
}

var knownEnvironments = map[EnvironmentTag]struct{}{
	EnvRain: {}, EnvNight: {}, EnvDay: {}, EnvCity: {}, EnvSchool: {}, EnvForest: {},
	EnvBeach: {}, EnvMountain: {}, EnvHome: {}, EnvPark: {}, EnvDefault: {}, EnvSleep: {},
}
