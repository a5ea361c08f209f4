package entities

const (
	STRATEGY_SAMPLER = "sampler"
	STRATEGY_SORT    = "sort"
	STRATEGY_SHUF    = "shuf"
)

type RsbenchConfig struct {
	// Also the sampler's series label, so it must not collide with a baseline
	Sampler   string            `mapstructure:"sampler" validate:"required,shellword,endsnotwith=/,ne=sort,ne=shuf"`
	Shell     string            `mapstructure:"shell" validate:"required"`
	OutputDir string            `mapstructure:"output_dir" validate:"required"`
	Scenarios []*ScenarioConfig `mapstructure:"scenarios" validate:"required,min=1,dive,required"`
}

type ScenarioConfig struct {
	Name       string   `mapstructure:"name" validate:"required,shellword"`
	Title      string   `mapstructure:"title"`
	SampleSize int      `mapstructure:"sample_size" validate:"gt=0"`
	Sizes      []int    `mapstructure:"sizes" validate:"required,min=1,dive,gt=0"`
	Strategies []string `mapstructure:"strategies" validate:"required,min=1,unique,dive,oneof=sampler sort shuf"`
	Discard    bool     `mapstructure:"discard"`
}
