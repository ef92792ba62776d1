// Package render defines the renderer contract, the registry hosts resolve
// renderers through, and the session that accumulates a submission value map
// with required-field gating.
package render
