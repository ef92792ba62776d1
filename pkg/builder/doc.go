// Package builder implements the interactive form schema editor: an ordered
// working sequence of field descriptors with append, move, replace, remove,
// and load operations, each emitting a typed event on a single channel so
// hosts observe every mutation in order.
package builder
