package graph

import "errors"

var (
	// ErrStructure reports a structural violation in the hierarchy:
	// attaching a child that already has a parent, or removing a child
	// from a hierarchy that is not its parent. Indicates a programming
	// error in the caller and is never silently recovered.
	ErrStructure = errors.New("graph: structural violation")

	// ErrDuplicateSingleton reports a second live instance of a
	// system-singleton component type.
	ErrDuplicateSingleton = errors.New("graph: duplicate system singleton")

	// ErrUnknownType reports a type name with no registered factory,
	// fatal during deserialization.
	ErrUnknownType = errors.New("graph: unknown type")
)
