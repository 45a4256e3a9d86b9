// Package scope implements jarlang's environment: a chain of variable
// scopes searched innermost first.
//
// Scopes live in an Arena and are addressed by ID. Each frame stores the ID
// of its parent, so several child scopes may share one ancestor and a
// lookup walks indices instead of following pointers.
package scope

import (
	"errors"
	"fmt"

	"github.com/podhmo/jarlang/object"
)

var (
	ErrUnresolved      = errors.New("unresolved variable")
	ErrAlreadyDeclared = errors.New("variable already declared")
	ErrConstant        = errors.New("cannot assign to constant")
	ErrInvalidScope    = errors.New("invalid scope")
)

// ID identifies a scope inside its Arena.
type ID int

const (
	// NoParent marks a frame without an enclosing scope.
	NoParent ID = -1
	// Root is the scope created by NewArena.
	Root ID = 0
)

type frame struct {
	parent ID
	store  map[string]object.Value
	consts map[string]bool
}

// Arena owns every scope frame of one interpreter session.
type Arena struct {
	frames []frame
}

// NewArena returns an arena holding a root scope with the constant
// bindings true, false and null.
func NewArena() *Arena {
	a := &Arena{}
	root := a.create(NoParent)
	// these names are fresh in a fresh frame, so declaration cannot fail
	_ = a.Declare(root, "true", object.TRUE, true)
	_ = a.Declare(root, "false", object.FALSE, true)
	_ = a.Declare(root, "null", object.NULL, true)
	return a
}

func (a *Arena) create(parent ID) ID {
	a.frames = append(a.frames, frame{
		parent: parent,
		store:  make(map[string]object.Value),
		consts: make(map[string]bool),
	})
	return ID(len(a.frames) - 1)
}

// NewScope creates an empty scope enclosed by parent. Pass NoParent for a
// detached scope that sees no other bindings.
func (a *Arena) NewScope(parent ID) (ID, error) {
	if parent != NoParent && !a.valid(parent) {
		return NoParent, fmt.Errorf("%w: parent %d", ErrInvalidScope, parent)
	}
	return a.create(parent), nil
}

// Parent returns the enclosing scope of id, or false for a parentless scope.
func (a *Arena) Parent(id ID) (ID, bool) {
	if !a.valid(id) {
		return NoParent, false
	}
	p := a.frames[id].parent
	return p, p != NoParent
}

// Len returns the number of frames in the arena.
func (a *Arena) Len() int {
	return len(a.frames)
}

func (a *Arena) valid(id ID) bool {
	return id >= 0 && int(id) < len(a.frames)
}

// Declare creates a binding in scope id. It fails when id itself already
// binds name; a binding of the same name in an ancestor is shadowed.
func (a *Arena) Declare(id ID, name string, val object.Value, constant bool) error {
	if !a.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidScope, id)
	}
	f := &a.frames[id]
	if _, ok := f.store[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyDeclared, name)
	}
	f.store[name] = val
	if constant {
		f.consts[name] = true
	}
	return nil
}

// Assign overwrites an existing binding in the scope that owns it.
func (a *Arena) Assign(id ID, name string, val object.Value) error {
	owner, err := a.Resolve(id, name)
	if err != nil {
		return err
	}
	f := &a.frames[owner]
	if f.consts[name] {
		return fmt.Errorf("%w: %s", ErrConstant, name)
	}
	f.store[name] = val
	return nil
}

// Lookup returns a copy of the value bound to name as seen from id.
func (a *Arena) Lookup(id ID, name string) (object.Value, bool) {
	owner, err := a.Resolve(id, name)
	if err != nil {
		return object.NULL, false
	}
	return a.frames[owner].store[name], true
}

// IsConstant reports whether the binding name, as seen from id, is constant.
func (a *Arena) IsConstant(id ID, name string) bool {
	owner, err := a.Resolve(id, name)
	if err != nil {
		return false
	}
	return a.frames[owner].consts[name]
}

// Resolve returns the nearest scope, starting at id and walking up the
// parent chain, that binds name.
func (a *Arena) Resolve(id ID, name string) (ID, error) {
	if !a.valid(id) {
		return NoParent, fmt.Errorf("%w: %d", ErrInvalidScope, id)
	}
	for cur := id; cur != NoParent; cur = a.frames[cur].parent {
		if _, ok := a.frames[cur].store[name]; ok {
			return cur, nil
		}
	}
	return NoParent, fmt.Errorf("%w: %s", ErrUnresolved, name)
}
