package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Arena_newNode_and_Get(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	id, err := a.newNode(NodeIdentifier, 3, 7)
	assert.NoError(err)
	kind, start, end := a.Get(id)
	assert.Equal(NodeIdentifier, kind)
	assert.Equal(uint32(3), start)
	assert.Equal(uint32(7), end)
}

func Test_Arena_newParent_unionsChildSpans(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	left, err := a.newNode(NodeIdentifier, 10, 14)
	assert.NoError(err)
	right, err := a.newNode(NodeIdentifier, 20, 25)
	assert.NoError(err)

	parent, err := a.newParent(NodeBinaryExpression, 0, 0, []NodeID{left, right})
	assert.NoError(err)

	_, start, end := a.Get(parent)
	assert.Equal(uint32(10), start)
	assert.Equal(uint32(25), end)
	assert.Equal([]NodeID{left, right}, a.Children(parent))
}

func Test_Arena_newParent_isPostOrder(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	leaf, err := a.newNode(NodeIdentifier, 0, 1)
	assert.NoError(err)
	parent, err := a.newParent(NodeFieldAccess, 0, 0, []NodeID{leaf})
	assert.NoError(err)
	assert.Greater(parent, leaf, "a parent's id must always be greater than every child's id")
}

func Test_Arena_newParent_skipsNoNodeChildren(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	only, err := a.newNode(NodeIdentifier, 5, 9)
	assert.NoError(err)
	parent, err := a.newParent(NodeUnaryExpression, 0, 0, []NodeID{NoNode, only})
	assert.NoError(err)
	assert.Equal([]NodeID{only}, a.Children(parent))
}

func Test_Arena_Reset_mintsNewID(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	_, err := a.newNode(NodeIdentifier, 0, 1)
	assert.NoError(err)
	before := a.ID
	a.Reset()
	assert.NotEqual(before, a.ID)
	assert.Equal(0, a.NodeCount())
}

func Test_Arena_attributeTables(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	id, err := a.newNode(NodeClassDeclaration, 0, 10)
	assert.NoError(err)
	a.typeDeclAttrs[id] = TypeDeclarationAttribute{Name: "Foo"}

	attr, ok := a.TypeDeclarationAttribute(id)
	assert.True(ok)
	assert.Equal("Foo", attr.Name)

	_, ok = a.TypeDeclarationAttribute(NodeID(999))
	assert.False(ok)
}

func Test_Arena_watchdog_nodeCountLimit(t *testing.T) {
	assert := assert.New(t)
	a := NewArena()
	a.watchdog = arenaWatchdog{maxNodes: 1, maxBytes: 1 << 30, checkEvery: 1, bytesPerNode: 1}
	_, err := a.newNode(NodeIdentifier, 0, 1)
	assert.NoError(err)
	_, err = a.newNode(NodeIdentifier, 1, 2)
	assert.Error(err)
}
