package javaparse

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// serialNode mirrors nodeRecord with exported fields so rezi's
// reflection-based binary codec can walk it.
type serialNode struct {
	Kind       int32
	Start      uint32
	End        uint32
	FirstChild int32
}

// keyed pairs, rather than maps, keep the wire shape unambiguous regardless
// of which key types rezi's map support actually handles.
type serialTypeDeclAttr struct {
	ID   int32
	Attr TypeDeclarationAttribute
}

type serialImportAttr struct {
	ID   int32
	Attr ImportAttribute
}

type serialPackageAttr struct {
	ID   int32
	Attr PackageAttribute
}

type serialParamAttr struct {
	ID   int32
	Attr ParameterAttribute
}

type serialEnumConstAttr struct {
	ID   int32
	Attr EnumConstantAttribute
}

// serialArena is the exported, flat mirror of Arena that rezi actually
// encodes. Arena itself keeps its fields unexported (spec §5's "exclusively
// owned by its parser during parsing" invariant shouldn't be weakened by a
// serialization escape hatch).
type serialArena struct {
	ID             string
	Nodes          []serialNode
	NextSibling    []int32
	TypeDeclAttrs  []serialTypeDeclAttr
	ImportAttrs    []serialImportAttr
	PackageAttrs   []serialPackageAttr
	ParamAttrs     []serialParamAttr
	EnumConstAttrs []serialEnumConstAttr
}

func (a *Arena) toSerial() serialArena {
	s := serialArena{
		ID:          a.ID.String(),
		Nodes:       make([]serialNode, len(a.nodes)),
		NextSibling: make([]int32, len(a.nextSibling)),
	}
	for i, n := range a.nodes {
		s.Nodes[i] = serialNode{
			Kind:       int32(n.kind),
			Start:      n.start,
			End:        n.end,
			FirstChild: int32(n.firstChild),
		}
	}
	for i, ns := range a.nextSibling {
		s.NextSibling[i] = int32(ns)
	}
	for id, attr := range a.typeDeclAttrs {
		s.TypeDeclAttrs = append(s.TypeDeclAttrs, serialTypeDeclAttr{ID: int32(id), Attr: attr})
	}
	for id, attr := range a.importAttrs {
		s.ImportAttrs = append(s.ImportAttrs, serialImportAttr{ID: int32(id), Attr: attr})
	}
	for id, attr := range a.packageAttrs {
		s.PackageAttrs = append(s.PackageAttrs, serialPackageAttr{ID: int32(id), Attr: attr})
	}
	for id, attr := range a.paramAttrs {
		s.ParamAttrs = append(s.ParamAttrs, serialParamAttr{ID: int32(id), Attr: attr})
	}
	for id, attr := range a.enumConstAttrs {
		s.EnumConstAttrs = append(s.EnumConstAttrs, serialEnumConstAttr{ID: int32(id), Attr: attr})
	}
	return s
}

func fromSerial(s serialArena) (*Arena, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return nil, fmt.Errorf("javaparse: decode arena id: %w", err)
	}

	a := &Arena{
		ID:             id,
		nodes:          make([]nodeRecord, len(s.Nodes)),
		nextSibling:    make([]NodeID, len(s.NextSibling)),
		typeDeclAttrs:  make(map[NodeID]TypeDeclarationAttribute, len(s.TypeDeclAttrs)),
		importAttrs:    make(map[NodeID]ImportAttribute, len(s.ImportAttrs)),
		packageAttrs:   make(map[NodeID]PackageAttribute, len(s.PackageAttrs)),
		paramAttrs:     make(map[NodeID]ParameterAttribute, len(s.ParamAttrs)),
		enumConstAttrs: make(map[NodeID]EnumConstantAttribute, len(s.EnumConstAttrs)),
		watchdog:       defaultWatchdog,
	}
	for i, n := range s.Nodes {
		a.nodes[i] = nodeRecord{
			kind:       NodeKind(n.Kind),
			start:      n.Start,
			end:        n.End,
			firstChild: NodeID(n.FirstChild),
		}
	}
	for i, ns := range s.NextSibling {
		a.nextSibling[i] = NodeID(ns)
	}
	for _, e := range s.TypeDeclAttrs {
		a.typeDeclAttrs[NodeID(e.ID)] = e.Attr
	}
	for _, e := range s.ImportAttrs {
		a.importAttrs[NodeID(e.ID)] = e.Attr
	}
	for _, e := range s.PackageAttrs {
		a.packageAttrs[NodeID(e.ID)] = e.Attr
	}
	for _, e := range s.ParamAttrs {
		a.paramAttrs[NodeID(e.ID)] = e.Attr
	}
	for _, e := range s.EnumConstAttrs {
		a.enumConstAttrs[NodeID(e.ID)] = e.Attr
	}
	return a, nil
}

// MarshalBinary encodes the arena's node table and attribute side tables to
// a compact binary form via rezi. The source text itself is not included;
// callers that need Text/Position after restoring must keep the original
// Source alongside the bytes.
func (a *Arena) MarshalBinary() ([]byte, error) {
	s := a.toSerial()
	return rezi.EncBinary(&s), nil
}

// UnmarshalBinary restores an arena's node table and attribute side tables
// from bytes produced by MarshalBinary, replacing a's current contents.
func (a *Arena) UnmarshalBinary(data []byte) error {
	var s serialArena
	n, err := rezi.DecBinary(data, &s)
	if err != nil {
		return fmt.Errorf("javaparse: rezi decode: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("javaparse: rezi decode: consumed %d/%d bytes", n, len(data))
	}

	restored, err := fromSerial(s)
	if err != nil {
		return err
	}
	*a = *restored
	return nil
}

// Snapshot serializes the arena to an opaque byte slice suitable for a
// caller-owned process-local cache (spec §6 supplemented capability; never
// a wire protocol — these bytes are not sent anywhere by this library).
func (a *Arena) Snapshot() ([]byte, error) {
	return a.MarshalBinary()
}

// RestoreSnapshot rebuilds an Arena from bytes produced by Snapshot.
func RestoreSnapshot(data []byte) (*Arena, error) {
	a := &Arena{}
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return a, nil
}
