package ir

// MetricKind discriminates Metric variants. Closed set: every switch over
// it must handle all kinds and route anything else to the unhandled-variant
// guard.
type MetricKind string

const (
	MetricConst      MetricKind = "CONST"
	MetricLife       MetricKind = "LIFE"
	MetricBoardCount MetricKind = "BOARD_COUNT"
	MetricCardStat   MetricKind = "CARD_STAT"
)

// Who selects a player relative to the effect's controller.
type Who string

const (
	WhoController Who = "CONTROLLER"
	WhoOpponent   Who = "OPPONENT"
)

// StatName selects one of a unit's two combat stats.
type StatName string

const (
	StatATK StatName = "ATK"
	StatHP  StatName = "HP"
)

// Subject selects which bound card id a leaf inspects: the ability's host
// (Self) or the card currently under evaluation (Target).
type Subject string

const (
	SubjectTarget Subject = "TARGET"
	SubjectSelf   Subject = "SELF"
)

// Metric is a numeric read of the match state.
type Metric struct {
	Kind MetricKind `yaml:"kind"`

	// MetricConst
	N int `yaml:"n,omitempty"`

	// MetricLife, MetricBoardCount
	Who Who `yaml:"who,omitempty"`

	// MetricBoardCount: zone defaults to Battlefield, tag optionally filters.
	Zone Zone   `yaml:"zone,omitempty"`
	Tag  string `yaml:"tag,omitempty"`

	// MetricCardStat reads the subject's effective stats, never template stats.
	Of   Subject  `yaml:"of,omitempty"`
	Stat StatName `yaml:"stat,omitempty"`
}

// ConstMetric builds a constant metric.
func ConstMetric(n int) Metric { return Metric{Kind: MetricConst, N: n} }

// ValueKind discriminates Value variants.
type ValueKind string

const (
	ValueConst ValueKind = "CONST"
	ValueClamp ValueKind = "CLAMP"
)

// Value is an effect-side number: either a constant or a clamped metric.
type Value struct {
	Kind ValueKind `yaml:"kind"`

	// ValueConst
	N int `yaml:"n,omitempty"`

	// ValueClamp
	Min int     `yaml:"min,omitempty"`
	Max int     `yaml:"max,omitempty"`
	Of  *Metric `yaml:"of,omitempty"`
}

// Const builds a constant value.
func Const(n int) Value { return Value{Kind: ValueConst, N: n} }

// Clamp builds a clamped metric value.
func Clamp(min, max int, of Metric) Value {
	return Value{Kind: ValueClamp, Min: min, Max: max, Of: &of}
}
