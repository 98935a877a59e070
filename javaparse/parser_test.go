package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_emptyClass(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("class Test {}")
	assert.NoError(err)

	kind, start, end := res.Arena.Get(res.Root)
	assert.Equal(NodeCompilationUnit, kind)
	assert.Equal(uint32(0), start)
	assert.Equal(uint32(len("class Test {}")), end)

	children := res.Arena.Children(res.Root)
	assert.Len(children, 1)
	classKind, _, _ := res.Arena.Get(children[0])
	assert.Equal(NodeClassDeclaration, classKind)
	attr, ok := res.Arena.TypeDeclarationAttribute(children[0])
	assert.True(ok)
	assert.Equal("Test", attr.Name)
}

func Test_Parse_blockCommentInsideBinaryExpression(t *testing.T) {
	assert := assert.New(t)
	src := "class T { void m() { int x = 1 + /* mid */ 2; } } "
	res, err := Parse(src)
	assert.NoError(err)

	// a comment between a binary operator and its right operand is a child
	// of the BINARY_EXPRESSION itself, the innermost node whose span
	// contains it, not of the enclosing block.
	var findBinary func(id NodeID) (NodeID, bool)
	findBinary = func(id NodeID) (NodeID, bool) {
		kind, _, _ := res.Arena.Get(id)
		if kind == NodeBinaryExpression {
			return id, true
		}
		for _, c := range res.Arena.Children(id) {
			if found, ok := findBinary(c); ok {
				return found, true
			}
		}
		return NoNode, false
	}
	binID, ok := findBinary(res.Root)
	assert.True(ok, "expected to find a binary expression in the parsed tree")

	children := res.Arena.Children(binID)
	assert.Len(children, 3, "binary expression must have operand, comment, operand")
	if len(children) == 3 {
		leftKind, _, _ := res.Arena.Get(children[0])
		midKind, _, _ := res.Arena.Get(children[1])
		rightKind, _, _ := res.Arena.Get(children[2])
		assert.Equal(NodeIntegerLiteral, leftKind)
		assert.Equal(NodeBlockComment, midKind)
		assert.Equal(NodeIntegerLiteral, rightKind)
	}
}

func Test_Parse_staticImportAttribute(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("import static java.util.Collections.emptyList;\nclass T {}")
	assert.NoError(err)

	children := res.Arena.Children(res.Root)
	assert.NotEmpty(children)
	kind, _, _ := res.Arena.Get(children[0])
	assert.Equal(NodeImportDeclaration, kind)

	attr, ok := res.Arena.ImportAttribute(children[0])
	assert.True(ok)
	assert.True(attr.IsStatic)
	assert.Equal("java.util.Collections.emptyList", attr.QualifiedName)
}

func Test_Parse_recordWithParameters(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("record Point(int x, int y) {}", Version17)
	assert.NoError(err)

	children := res.Arena.Children(res.Root)
	assert.Len(children, 1)
	kind, _, _ := res.Arena.Get(children[0])
	assert.Equal(NodeRecordDeclaration, kind)

	attr, ok := res.Arena.TypeDeclarationAttribute(children[0])
	assert.True(ok)
	assert.Equal("Point", attr.Name)

	var paramCount int
	for _, c := range res.Arena.Children(children[0]) {
		k, _, _ := res.Arena.Get(c)
		if k == NodeParameterDeclaration {
			paramCount++
		}
	}
	assert.Equal(2, paramCount)
}

func Test_Parse_instanceofPatternBindingSpan(t *testing.T) {
	assert := assert.New(t)
	src := "class T { void m(Object o) { if (o instanceof String s) {} } }"
	res, err := Parse(src, Version16)
	assert.NoError(err)

	var findPattern func(id NodeID) (NodeID, bool)
	findPattern = func(id NodeID) (NodeID, bool) {
		kind, _, _ := res.Arena.Get(id)
		if kind == NodePattern {
			return id, true
		}
		for _, c := range res.Arena.Children(id) {
			if found, ok := findPattern(c); ok {
				return found, true
			}
		}
		return NoNode, false
	}
	patID, ok := findPattern(res.Root)
	assert.True(ok, "expected an instanceof pattern binding in the parsed tree")

	_, pstart, pend := res.Arena.Get(patID)
	assert.Equal("String s", src[pstart:pend])
}

func Test_Parse_methodReferenceSpan(t *testing.T) {
	assert := assert.New(t)
	src := "class T { void m() { Runnable r = System.out::println; } }"
	res, err := Parse(src)
	assert.NoError(err)

	var findRef func(id NodeID) (NodeID, bool)
	findRef = func(id NodeID) (NodeID, bool) {
		kind, _, _ := res.Arena.Get(id)
		if kind == NodeMethodReference {
			return id, true
		}
		for _, c := range res.Arena.Children(id) {
			if found, ok := findRef(c); ok {
				return found, true
			}
		}
		return NoNode, false
	}
	refID, ok := findRef(res.Root)
	assert.True(ok, "expected a method reference in the parsed tree")

	_, rstart, rend := res.Arena.Get(refID)
	assert.Equal("System.out::println", src[rstart:rend])
}

func Test_Parse_errorIncludesLineAndColumn(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("class T {\n  int x\n}")
	if !assert.Error(err) {
		return
	}
	pe, ok := err.(ParseError)
	assert.True(ok)
	assert.Equal(ExpectedToken, pe.Kind)
	assert.Contains(pe.Error(), "at line")
	assert.Contains(pe.Error(), "column")
}

func Test_Parse_lambdaExpressions(t *testing.T) {
	assert := assert.New(t)
	testCases := []string{
		"class T { Runnable r = () -> {}; }",
		"class T { java.util.function.Function<Integer,Integer> f = x -> x + 1; }",
		"class T { java.util.function.BiFunction<Integer,Integer,Integer> f = (Integer a, Integer b) -> a + b; }",
		"class T { java.util.function.BiFunction<Integer,Integer,Integer> f = (a, b) -> a + b; }",
	}
	for _, src := range testCases {
		_, err := Parse(src)
		assert.NoError(err, "source: %s", src)
	}
}

func Test_Parse_castVsParenthesizedExpression(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("class T { void m() { int x = (int) 1.5; int y = (x); } }")
	assert.NoError(err)

	var kinds []NodeKind
	var walk func(id NodeID)
	walk = func(id NodeID) {
		kind, _, _ := res.Arena.Get(id)
		kinds = append(kinds, kind)
		for _, c := range res.Arena.Children(id) {
			walk(c)
		}
	}
	walk(res.Root)

	assert.Contains(kinds, NodeCastExpression)
	assert.Contains(kinds, NodeParenthesizedExpression)
}

func Test_Parse_featureGatingRejectsConstructBelowItsVersion(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		version Version
	}{
		{"record declaration before 16", "record Point(int x, int y) {}", Version8},
		{"sealed type before 17", "class T { sealed interface Shape permits Circle {} }", Version16},
		{"switch expression before 17", "class T { int m(int x) { return switch (x) { default -> 0; }; } }", Version16},
		{"pattern switch before 21", "class T { String m(Object o) { return switch (o) { case String s -> s; default -> \"\"; }; } }", Version17},
		{"module declaration before 25", "module foo.bar { requires java.base; }", Version17},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			_, err := Parse(tc.src, tc.version)
			if !assert.Error(err, "source: %s", tc.src) {
				return
			}
			pe, ok := err.(ParseError)
			assert.True(ok, "expected a ParseError, got %T: %v", err, err)
			assert.Equal(Feature, pe.Kind)
		})
	}
}

func Test_Parse_varBelowItsVersionParsesAsOrdinaryTypeName(t *testing.T) {
	// unlike record/sealed/switch-expression/pattern-switch/module, `var`
	// used below version 11 is not rejected: it is syntactically valid at
	// every version as an ordinary (if oddly named) type, exactly as spec
	// §4.5 describes for `record` pre-16 ("an identifier"). Only the
	// type-inference *meaning* of `var` is version-gated, not its spelling.
	assert := assert.New(t)
	res, err := Parse("class T { void m() { var x = 1; } }", Version8)
	assert.NoError(err)

	var findIdent func(id NodeID) bool
	var sawVarAsType bool
	findIdent = func(id NodeID) bool {
		kind, start, end := res.Arena.Get(id)
		if kind == NodeIdentifier && end-start == 3 {
			sawVarAsType = true
		}
		for _, c := range res.Arena.Children(id) {
			findIdent(c)
		}
		return sawVarAsType
	}
	assert.True(findIdent(res.Root), "expected `var` to be parsed as an ordinary identifier type name")
}

func Test_Parse_featureGatingAcceptsConstructAtItsMinimumVersion(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		version Version
	}{
		{"record declaration at 16", "record Point(int x, int y) {}", Version16},
		{"var at 11", "class T { void m() { var x = 1; } }", Version11},
		{"sealed type at 17", "class T { sealed interface Shape permits Circle {} } class Circle implements Shape {}", Version17},
		{"switch expression at 17", "class T { int m(int x) { return switch (x) { default -> 0; }; } }", Version17},
		{"pattern switch at 21", "class T { String m(Object o) { return switch (o) { case String s -> s; default -> \"\"; }; } }", Version21},
		{"module declaration at 25", "module foo.bar { requires java.base; }", Version25},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			_, err := Parse(tc.src, tc.version)
			assert.NoError(err, "source: %s", tc.src)
		})
	}
}

func Test_Parse_versionMonotonicity(t *testing.T) {
	// a source that parses successfully at a given version must parse at
	// every defined version greater than or equal to it (spec's "Version
	// monotonicity" invariant, checked here at the Parse level rather than
	// just the featureSet level already covered in version_test.go).
	testCases := []struct {
		src     string
		minimum Version
	}{
		{"record Point(int x, int y) {}", Version16},
		{"class T { void m() { var x = 1; } }", Version11},
		{"class T { int m(int x) { return switch (x) { default -> 0; }; } }", Version17},
	}
	allVersions := []Version{Version8, Version11, Version16, Version17, Version21, Version25}

	for _, tc := range testCases {
		for _, v := range allVersions {
			if v < tc.minimum {
				continue
			}
			t.Run(tc.src, func(t *testing.T) {
				_, err := Parse(tc.src, v)
				assert.NoError(t, err, "source %q should parse at version %v (minimum %v)", tc.src, v, tc.minimum)
			})
		}
	}
}

func Test_Parse_switchExpressionWithPatterns(t *testing.T) {
	assert := assert.New(t)
	src := `class T {
		String describe(Object o) {
			return switch (o) {
				case Integer i when i > 0 -> "positive int";
				case Integer i -> "int";
				default -> "other";
			};
		}
	}`
	res, err := Parse(src, Version21)
	assert.NoError(err)

	var found bool
	var walk func(id NodeID)
	walk = func(id NodeID) {
		kind, _, _ := res.Arena.Get(id)
		if kind == NodeSwitchExpression {
			found = true
		}
		for _, c := range res.Arena.Children(id) {
			walk(c)
		}
	}
	walk(res.Root)
	assert.True(found)
}
