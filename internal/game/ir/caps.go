package ir

// Caps holds the global numeric safety ceilings shared by the interpreter
// and the static analyzer. The interpreter enforces the interpretation
// caps defensively at runtime; the analyzer proves offline that worst-case
// effect chains stay under the credit ceilings.
type Caps struct {
	// Interpretation caps.
	MaxRepeat         int `yaml:"maxRepeat"`
	MaxForEachTargets int `yaml:"maxForEachTargets"`
	MaxCaseBranches   int `yaml:"maxCaseBranches"`

	// Analyzer credit ceilings per resolution chain.
	MaxTriggerCredits int `yaml:"maxTriggerCredits"`
	MaxSpawnCredits   int `yaml:"maxSpawnCredits"`
}

// DefaultCaps returns the ceilings every stock ruleset ships with.
func DefaultCaps() Caps {
	return Caps{
		MaxRepeat:         10,
		MaxForEachTargets: 10,
		MaxCaseBranches:   8,
		MaxTriggerCredits: 32,
		MaxSpawnCredits:   16,
	}
}
