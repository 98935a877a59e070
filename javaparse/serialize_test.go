package javaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Arena_Snapshot_RestoreSnapshot_roundTrip(t *testing.T) {
	assert := assert.New(t)
	src := `class T {
		record Point(int x, int y) {}
		void m() { int z = 1 + 2; }
	}`
	res, err := Parse(src, Version17)
	if !assert.NoError(err) {
		return
	}

	data, err := res.Arena.Snapshot()
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(data)

	restored, err := RestoreSnapshot(data)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(res.Arena.ID, restored.ID)
	assert.Equal(res.Arena.NodeCount(), restored.NodeCount())

	origKind, origStart, origEnd := res.Arena.Get(res.Root)
	restKind, restStart, restEnd := restored.Get(res.Root)
	assert.Equal(origKind, restKind)
	assert.Equal(origStart, restStart)
	assert.Equal(origEnd, restEnd)

	origChildren := res.Arena.Children(res.Root)
	restChildren := restored.Children(res.Root)
	assert.Equal(origChildren, restChildren)

	var findRecord func(a *Arena, id NodeID) (NodeID, bool)
	findRecord = func(a *Arena, id NodeID) (NodeID, bool) {
		kind, _, _ := a.Get(id)
		if kind == NodeRecordDeclaration {
			return id, true
		}
		for _, c := range a.Children(id) {
			if found, ok := findRecord(a, c); ok {
				return found, true
			}
		}
		return NoNode, false
	}

	origRecID, ok := findRecord(res.Arena, res.Root)
	if !assert.True(ok) {
		return
	}
	restRecID, ok := findRecord(restored, NodeID(restored.NodeCount()-1))
	if !assert.True(ok) {
		return
	}

	origAttr, ok := res.Arena.TypeDeclarationAttribute(origRecID)
	assert.True(ok)
	restAttr, ok := restored.TypeDeclarationAttribute(restRecID)
	assert.True(ok)
	assert.Equal(origAttr, restAttr)
}

func Test_Arena_UnmarshalBinary_rejectsTruncatedData(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("class T {}")
	if !assert.NoError(err) {
		return
	}
	data, err := res.Arena.Snapshot()
	if !assert.NoError(err) {
		return
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty snapshot")
	}

	_, err = RestoreSnapshot(data[:len(data)-1])
	assert.Error(err)
}

func Test_Arena_Reset_doesNotAffectPriorSnapshot(t *testing.T) {
	assert := assert.New(t)
	res, err := Parse("class T {}")
	if !assert.NoError(err) {
		return
	}
	data, err := res.Arena.Snapshot()
	if !assert.NoError(err) {
		return
	}

	res.Arena.Reset()
	assert.Equal(0, res.Arena.NodeCount())

	restored, err := RestoreSnapshot(data)
	if !assert.NoError(err) {
		return
	}
	assert.True(restored.NodeCount() > 0)
}
