package javaparse

// Version is a target-language version identifier (8, 11, 17, 21, 25, ...).
type Version int

// Defined versions, oldest to newest. fromNumber maps an arbitrary integer
// to the highest of these that is <= the given number.
const (
	Version8  Version = 8
	Version11 Version = 11
	Version16 Version = 16
	Version17 Version = 17
	Version21 Version = 21
	Version25 Version = 25
)

// DefaultVersion is used when no version is given to Parse/Tokenize.
const DefaultVersion = Version25

var definedVersions = []Version{Version8, Version11, Version16, Version17, Version21, Version25}

// feature is a grammar toggle gated by language version (spec §4.5).
type feature int

const (
	featureRecords feature = iota
	featureSealedTypes
	featurePatternInstanceof
	featureSwitchExpressions
	featurePatternSwitch
	featureRecordPatterns
	featureTextBlocks
	featureModules
	featureVar
	featureLambdas
	featureMethodReferences
)

// featureSet is a small set of grammar feature flags.
type featureSet map[feature]bool

func newFeatureSet(features ...feature) featureSet {
	s := make(featureSet, len(features))
	for _, f := range features {
		s[f] = true
	}
	return s
}

func (s featureSet) has(f feature) bool {
	return s[f]
}

// union returns a new set containing every feature in s or o.
func (s featureSet) union(o featureSet) featureSet {
	out := make(featureSet, len(s)+len(o))
	for f := range s {
		out[f] = true
	}
	for f := range o {
		out[f] = true
	}
	return out
}

// minus returns a new set containing every feature in s that is not in o.
func (s featureSet) minus(o featureSet) featureSet {
	out := make(featureSet, len(s))
	for f := range s {
		if !o[f] {
			out[f] = true
		}
	}
	return out
}

// versionStrategyRegistry is a pure, constant mapping from version to
// enabled feature set (spec §4.5). There is no process-wide mutable state
// (spec §9).
var versionStrategyRegistry = buildVersionRegistry()

func buildVersionRegistry() map[Version]featureSet {
	v8 := newFeatureSet(featureLambdas, featureMethodReferences)
	v11 := v8.union(newFeatureSet(featureVar))
	v16 := v11.union(newFeatureSet(featurePatternInstanceof, featureRecords))
	v17 := v16.union(newFeatureSet(featureSealedTypes, featureTextBlocks, featureSwitchExpressions))
	v21 := v17.union(newFeatureSet(featurePatternSwitch, featureRecordPatterns))
	v25 := v21.union(newFeatureSet(featureModules))

	return map[Version]featureSet{
		Version8:  v8,
		Version11: v11,
		Version16: v16,
		Version17: v17,
		Version21: v21,
		Version25: v25,
	}
}

// fromNumber maps an integer to the highest defined version <= n. If n is
// below every defined version, the lowest defined version is returned.
func fromNumber(n int) Version {
	best := definedVersions[0]
	for _, v := range definedVersions {
		if int(v) <= n {
			best = v
		}
	}
	return best
}

// isAtLeast does ordinal comparison of two versions.
func (v Version) isAtLeast(other Version) bool {
	return v >= other
}

func (v Version) features() featureSet {
	if fs, ok := versionStrategyRegistry[v]; ok {
		return fs
	}
	return versionStrategyRegistry[fromNumber(int(v))]
}

func (v Version) supports(f feature) bool {
	return v.features().has(f)
}
