package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Version_supports(t *testing.T) {
	testCases := []struct {
		name    string
		version Version
		feature feature
		expect  bool
	}{
		{name: "v8 has lambdas", version: Version8, feature: featureLambdas, expect: true},
		{name: "v8 lacks records", version: Version8, feature: featureRecords, expect: false},
		{name: "v8 lacks var", version: Version8, feature: featureVar, expect: false},
		{name: "v11 has var", version: Version11, feature: featureVar, expect: true},
		{name: "v11 lacks pattern instanceof", version: Version11, feature: featurePatternInstanceof, expect: false},
		{name: "v16 has pattern instanceof", version: Version16, feature: featurePatternInstanceof, expect: true},
		{name: "v16 has records", version: Version16, feature: featureRecords, expect: true},
		{name: "v16 lacks sealed types", version: Version16, feature: featureSealedTypes, expect: false},
		{name: "v17 has sealed types", version: Version17, feature: featureSealedTypes, expect: true},
		{name: "v17 has text blocks", version: Version17, feature: featureTextBlocks, expect: true},
		{name: "v17 has switch expressions", version: Version17, feature: featureSwitchExpressions, expect: true},
		{name: "v17 lacks pattern switch", version: Version17, feature: featurePatternSwitch, expect: false},
		{name: "v21 has pattern switch", version: Version21, feature: featurePatternSwitch, expect: true},
		{name: "v21 has record patterns", version: Version21, feature: featureRecordPatterns, expect: true},
		{name: "v21 lacks modules feature flag", version: Version21, feature: featureModules, expect: false},
		{name: "v25 has modules", version: Version25, feature: featureModules, expect: true},
		{name: "v25 retains every earlier feature", version: Version25, feature: featureLambdas, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.version.supports(tc.feature))
		})
	}
}

func Test_fromNumber(t *testing.T) {
	testCases := []struct {
		name   string
		n      int
		expect Version
	}{
		{name: "exact match", n: 17, expect: Version17},
		{name: "between two defined versions rounds down", n: 20, expect: Version17},
		{name: "above every defined version", n: 99, expect: Version25},
		{name: "below every defined version", n: 6, expect: Version8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, fromNumber(tc.n))
		})
	}
}

func Test_Version_isAtLeast(t *testing.T) {
	assert.True(t, Version17.isAtLeast(Version11))
	assert.True(t, Version17.isAtLeast(Version17))
	assert.False(t, Version11.isAtLeast(Version17))
}

func Test_Version_monotonicallyAccumulatesFeatures(t *testing.T) {
	assert := assert.New(t)
	for i := 1; i < len(definedVersions); i++ {
		older := definedVersions[i-1].features()
		newer := definedVersions[i].features()
		for f := range older {
			assert.True(newer.has(f), "version %d dropped a feature %d had", definedVersions[i], definedVersions[i-1])
		}
	}
}
