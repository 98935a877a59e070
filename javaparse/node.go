package javaparse

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NodeKind is a closed enumeration of AST node kinds (spec §3).
type NodeKind int

const (
	NodeCompilationUnit NodeKind = iota
	NodePackageDeclaration
	NodeImportDeclaration
	NodeModuleDeclaration
	NodeModuleDirective

	NodeClassDeclaration
	NodeInterfaceDeclaration
	NodeEnumDeclaration
	NodeRecordDeclaration
	NodeAnnotationDeclaration
	NodeEnumConstant
	NodeMethodDeclaration
	NodeFieldDeclaration
	NodeParameterDeclaration
	NodeVariableDeclarator
	NodeLocalVariableDeclaration
	NodeTypeParameter
	NodeAnnotationElement

	NodeBlock
	NodeIfStatement
	NodeForStatement
	NodeEnhancedForStatement
	NodeWhileStatement
	NodeDoStatement
	NodeLabeledStatement
	NodeReturnStatement
	NodeBreakStatement
	NodeContinueStatement
	NodeThrowStatement
	NodeSynchronizedStatement
	NodeAssertStatement
	NodeTryStatement
	NodeCatchClause
	NodeResource
	NodeExpressionStatement
	NodeSwitchStatement
	NodeSwitchExpression
	NodeSwitchCase
	NodeYieldStatement

	NodeBinaryExpression
	NodeUnaryExpression
	NodePostfixExpression
	NodeConditionalExpression
	NodeAssignmentExpression
	NodeCastExpression
	NodeMethodInvocation
	NodeMethodReference
	NodeFieldAccess
	NodeArrayAccess
	NodeLambdaExpression
	NodeThisExpression
	NodeSuperExpression
	NodeObjectCreationExpression
	NodeArrayCreationExpression
	NodeQualifiedName
	NodeIdentifier
	NodeParenthesizedExpression
	NodePattern

	NodePrimitiveType
	NodeParameterizedType
	NodeWildcardType
	NodeArrayType
	NodeArrayInitializer
	NodeAnnotation

	NodeIntegerLiteral
	NodeLongLiteral
	NodeFloatLiteral
	NodeDoubleLiteral
	NodeBooleanLiteral
	NodeStringLiteral
	NodeTextBlockLiteral
	NodeCharLiteral
	NodeNullLiteral

	NodeLineComment
	NodeBlockComment
	NodeJavadocComment
)

var nodeKindNames = [...]string{
	"COMPILATION_UNIT", "PACKAGE_DECLARATION", "IMPORT_DECLARATION", "MODULE_DECLARATION", "MODULE_DIRECTIVE",
	"CLASS_DECLARATION", "INTERFACE_DECLARATION", "ENUM_DECLARATION", "RECORD_DECLARATION", "ANNOTATION_DECLARATION",
	"ENUM_CONSTANT", "METHOD_DECLARATION", "FIELD_DECLARATION", "PARAMETER_DECLARATION", "VARIABLE_DECLARATOR",
	"LOCAL_VARIABLE_DECLARATION", "TYPE_PARAMETER", "ANNOTATION_ELEMENT",
	"BLOCK", "IF_STATEMENT", "FOR_STATEMENT", "ENHANCED_FOR_STATEMENT", "WHILE_STATEMENT", "DO_STATEMENT",
	"LABELED_STATEMENT", "RETURN_STATEMENT", "BREAK_STATEMENT", "CONTINUE_STATEMENT", "THROW_STATEMENT",
	"SYNCHRONIZED_STATEMENT", "ASSERT_STATEMENT", "TRY_STATEMENT", "CATCH_CLAUSE", "RESOURCE",
	"EXPRESSION_STATEMENT", "SWITCH_STATEMENT", "SWITCH_EXPRESSION", "SWITCH_CASE", "YIELD_STATEMENT",
	"BINARY_EXPRESSION", "UNARY_EXPRESSION", "POSTFIX_EXPRESSION", "CONDITIONAL_EXPRESSION", "ASSIGNMENT_EXPRESSION",
	"CAST_EXPRESSION", "METHOD_INVOCATION", "METHOD_REFERENCE", "FIELD_ACCESS", "ARRAY_ACCESS",
	"LAMBDA_EXPRESSION", "THIS_EXPRESSION", "SUPER_EXPRESSION", "OBJECT_CREATION_EXPRESSION", "ARRAY_CREATION_EXPRESSION",
	"QUALIFIED_NAME", "IDENTIFIER", "PARENTHESIZED_EXPRESSION", "PATTERN",
	"PRIMITIVE_TYPE", "PARAMETERIZED_TYPE", "WILDCARD_TYPE", "ARRAY_TYPE", "ARRAY_INITIALIZER", "ANNOTATION",
	"INTEGER_LITERAL", "LONG_LITERAL", "FLOAT_LITERAL", "DOUBLE_LITERAL", "BOOLEAN_LITERAL", "STRING_LITERAL",
	"TEXT_BLOCK", "CHAR_LITERAL", "NULL_LITERAL",
	"LINE_COMMENT", "BLOCK_COMMENT", "JAVADOC_COMMENT",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// NodeID is a small integer identifying a node within a single Arena. Never
// use an id from one arena against another (spec §5).
type NodeID int32

// NoNode is the id used for an absent child/sibling link.
const NoNode NodeID = -1

type nodeRecord struct {
	kind       NodeKind
	start, end uint32
	firstChild NodeID
}

// Attribute kinds carried in the arena's side tables (spec §3).
type TypeDeclarationAttribute struct {
	Name string
}

type ImportAttribute struct {
	QualifiedName string
	IsStatic      bool
}

type PackageAttribute struct {
	Name string
}

type ParameterAttribute struct {
	Name       string
	IsFinal    bool
	IsVarArgs  bool
	IsReceiver bool
}

type EnumConstantAttribute struct {
	Name string
}

// arenaWatchdog enforces the resource caps of spec §5: a maximum node count
// and a soft memory-in-use ceiling, both checked every 1000 allocations.
type arenaWatchdog struct {
	maxNodes     int
	maxBytes     int
	checkEvery   int
	bytesPerNode int
}

var defaultWatchdog = arenaWatchdog{
	maxNodes:     4_000_000,
	maxBytes:     512 * 1024 * 1024,
	checkEvery:   1000,
	bytesPerNode: 32, // nodeRecord + sibling slot, approximate
}

// Arena is a bump-allocated, append-only store of AST node records. It is
// exclusively owned by its parser during parsing; once parsing completes it
// is read-only and may be shared by any number of readers (spec §5).
type Arena struct {
	ID uuid.UUID

	nodes       []nodeRecord
	nextSibling []NodeID

	typeDeclAttrs  map[NodeID]TypeDeclarationAttribute
	importAttrs    map[NodeID]ImportAttribute
	packageAttrs   map[NodeID]PackageAttribute
	paramAttrs     map[NodeID]ParameterAttribute
	enumConstAttrs map[NodeID]EnumConstantAttribute

	watchdog arenaWatchdog
}

// NewArena creates an empty arena ready for a single parse.
func NewArena() *Arena {
	return &Arena{
		ID:             uuid.New(),
		typeDeclAttrs:  make(map[NodeID]TypeDeclarationAttribute),
		importAttrs:    make(map[NodeID]ImportAttribute),
		packageAttrs:   make(map[NodeID]PackageAttribute),
		paramAttrs:     make(map[NodeID]ParameterAttribute),
		enumConstAttrs: make(map[NodeID]EnumConstantAttribute),
		watchdog:       defaultWatchdog,
	}
}

// Reset returns the arena to empty for pooled reuse, minting a fresh ID so a
// caller correlating parses by Arena.ID never confuses a reused arena with
// its predecessor. The node slices are truncated in O(1), keeping their
// capacity; the attribute side tables are cleared entry by entry, so that
// part costs time proportional to the number of attributes stored.
func (a *Arena) Reset() {
	a.ID = uuid.New()
	a.nodes = a.nodes[:0]
	a.nextSibling = a.nextSibling[:0]
	for k := range a.typeDeclAttrs {
		delete(a.typeDeclAttrs, k)
	}
	for k := range a.importAttrs {
		delete(a.importAttrs, k)
	}
	for k := range a.packageAttrs {
		delete(a.packageAttrs, k)
	}
	for k := range a.paramAttrs {
		delete(a.paramAttrs, k)
	}
	for k := range a.enumConstAttrs {
		delete(a.enumConstAttrs, k)
	}
}

// NodeCount returns the number of nodes currently allocated.
func (a *Arena) NodeCount() int {
	return len(a.nodes)
}

// newNode allocates a leaf node (no children yet) and returns its id. The
// watchdog is checked every 1000 allocations per spec §5.
func (a *Arena) newNode(kind NodeKind, start, end uint32) (NodeID, error) {
	if len(a.nodes)%a.watchdog.checkEvery == 0 {
		if len(a.nodes) >= a.watchdog.maxNodes {
			return NoNode, fmt.Errorf("arena is full: node count limit (%d) exceeded", a.watchdog.maxNodes)
		}
		if len(a.nodes)*a.watchdog.bytesPerNode >= a.watchdog.maxBytes {
			return NoNode, fmt.Errorf("arena is full: memory-pressure limit (%d bytes) exceeded", a.watchdog.maxBytes)
		}
	}

	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, nodeRecord{kind: kind, start: start, end: end, firstChild: NoNode})
	a.nextSibling = append(a.nextSibling, NoNode)
	return id, nil
}

// newParent allocates a node as the parent of the given children, in
// post-order (the parent's id is always greater than every child's id: spec
// §4.4, §5). children must already be in source order; this function wires
// up first_child/next_sibling and computes start/end from extra (outer
// punctuation span) unioned with the children's spans.
func (a *Arena) newParent(kind NodeKind, extraStart, extraEnd uint32, children []NodeID) (NodeID, error) {
	start, end := extraStart, extraEnd
	for _, c := range children {
		if c == NoNode {
			continue
		}
		rec := a.nodes[c]
		if rec.start < start {
			start = rec.start
		}
		if rec.end > end {
			end = rec.end
		}
	}

	id, err := a.newNode(kind, start, end)
	if err != nil {
		return NoNode, err
	}

	var first NodeID = NoNode
	var prev NodeID = NoNode
	for _, c := range children {
		if c == NoNode {
			continue
		}
		if first == NoNode {
			first = c
		} else {
			a.nextSibling[prev] = c
		}
		prev = c
	}
	a.nodes[id].firstChild = first
	return id, nil
}

// Get returns the (kind, start, end) triple for a node.
func (a *Arena) Get(id NodeID) (NodeKind, uint32, uint32) {
	rec := a.nodes[id]
	return rec.kind, rec.start, rec.end
}

// Children returns the ids of id's direct children, in source order.
func (a *Arena) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := a.nodes[id].firstChild; c != NoNode; c = a.nextSibling[c] {
		out = append(out, c)
	}
	return out
}

// Text returns the slice of source covered by id's span.
func (a *Arena) Text(id NodeID, src *Source) string {
	rec := a.nodes[id]
	return src.Slice(rec.start, rec.end)
}

// TypeDeclarationAttribute returns the name attribute of a class/interface/
// enum/record/annotation declaration. The same table also holds the name of
// each METHOD_DECLARATION and VARIABLE_DECLARATOR node.
func (a *Arena) TypeDeclarationAttribute(id NodeID) (TypeDeclarationAttribute, bool) {
	attr, ok := a.typeDeclAttrs[id]
	return attr, ok
}

// ImportAttribute returns the qualified-name/is-static attribute of an
// import declaration.
func (a *Arena) ImportAttribute(id NodeID) (ImportAttribute, bool) {
	attr, ok := a.importAttrs[id]
	return attr, ok
}

// PackageAttribute returns the name attribute of a package declaration.
func (a *Arena) PackageAttribute(id NodeID) (PackageAttribute, bool) {
	attr, ok := a.packageAttrs[id]
	return attr, ok
}

// ParameterAttribute returns the name/final/varargs/receiver attribute of a
// parameter declaration.
func (a *Arena) ParameterAttribute(id NodeID) (ParameterAttribute, bool) {
	attr, ok := a.paramAttrs[id]
	return attr, ok
}

// EnumConstantAttribute returns the name attribute of an enum constant.
func (a *Arena) EnumConstantAttribute(id NodeID) (EnumConstantAttribute, bool) {
	attr, ok := a.enumConstAttrs[id]
	return attr, ok
}

// DebugTree renders root and its descendants as a human-readable indented
// tree.
func (a *Arena) DebugTree(root NodeID, src *Source) string {
	var sb strings.Builder
	a.debugTreeLevel(&sb, root, src, "", "")
	return sb.String()
}

func (a *Arena) debugTreeLevel(sb *strings.Builder, id NodeID, src *Source, firstPrefix, contPrefix string) {
	rec := a.nodes[id]
	sb.WriteString(firstPrefix)
	fmt.Fprintf(sb, "( %s %d-%d )", rec.kind, rec.start, rec.end)

	children := a.Children(id)
	for i, c := range children {
		sb.WriteRune('\n')
		var nextFirst, nextCont string
		if i+1 < len(children) {
			nextFirst = contPrefix + "  |-: "
			nextCont = contPrefix + "  |   "
		} else {
			nextFirst = contPrefix + `  \-: `
			nextCont = contPrefix + "      "
		}
		a.debugTreeLevel(sb, c, src, nextFirst, nextCont)
	}
}
