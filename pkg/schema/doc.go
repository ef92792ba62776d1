// Package schema defines the form schema data model: field descriptors, the
// ordered form they compose, and the codec that round-trips forms through
// their serialized wire shape.
//
// The package is deliberately free of rendering and persistence concerns;
// builders mutate forms, renderers consume them, and stores persist the
// serialized blobs produced here.
package schema
