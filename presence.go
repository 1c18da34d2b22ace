package yamltree

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps dotted field paths (for example "server.port" or
// "items[1].sku") to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the decoded value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// Seen reports whether the given field was present in input (PresenceSeen).
func (d Decoded[T]) Seen(field FieldToken[T]) bool {
	return d.Presence[field.key]&PresenceSeen != 0
}

// WasNull reports whether the given field was explicitly null in input.
func (d Decoded[T]) WasNull(field FieldToken[T]) bool {
	return d.Presence[field.key]&PresenceWasNull != 0
}

// DefaultApplied reports whether the given field value was materialized from a default.
func (d Decoded[T]) DefaultApplied(field FieldToken[T]) bool {
	return d.Presence[field.key]&PresenceDefaultApplied != 0
}

// SeenPath is Seen for nested fields.
func (d Decoded[T]) SeenPath(p FieldPathToken[T]) bool {
	return d.Presence[p.String()]&PresenceSeen != 0
}
