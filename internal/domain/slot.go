package domain

import (
	"bytes"
	"encoding/json"
)

// SlotKind tags how a slot value is encoded at rest.
type SlotKind string

const (
	SlotKindScalar     SlotKind = "scalar"
	SlotKindStructured SlotKind = "structured"
)

// SlotValue is a tagged slot value. Structured values (JSON objects and
// arrays) round-trip exactly; scalars are stored and returned in their
// string form, which is lossy for non-string scalars.
type SlotValue struct {
	Kind       SlotKind
	Scalar     string
	Structured json.RawMessage
}

// ScalarSlot wraps a plain string value.
func ScalarSlot(s string) SlotValue {
	return SlotValue{Kind: SlotKindScalar, Scalar: s}
}

// StructuredSlot wraps a JSON object or array.
func StructuredSlot(raw json.RawMessage) SlotValue {
	return SlotValue{Kind: SlotKindStructured, Structured: raw}
}

// SlotValueFromJSON classifies a raw JSON value: objects and arrays stay
// structured, everything else collapses to its scalar string form.
func SlotValueFromJSON(raw json.RawMessage) SlotValue {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SlotValue{Kind: SlotKindStructured, Structured: append(json.RawMessage(nil), trimmed...)}
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return SlotValue{Kind: SlotKindScalar, Scalar: s}
	}
	// Numbers, booleans and null keep their literal rendering.
	return SlotValue{Kind: SlotKindScalar, Scalar: string(trimmed)}
}

// DecodeSlotValue rebuilds a value from its stored kind and text.
func DecodeSlotValue(kind SlotKind, value string) SlotValue {
	if kind == SlotKindStructured {
		return SlotValue{Kind: SlotKindStructured, Structured: json.RawMessage(value)}
	}
	return SlotValue{Kind: SlotKindScalar, Scalar: value}
}

// Encoded returns the storage text for the value.
func (v SlotValue) Encoded() string {
	if v.Kind == SlotKindStructured {
		return string(v.Structured)
	}
	return v.Scalar
}

// String returns the display form used in prompt rendering.
func (v SlotValue) String() string {
	return v.Encoded()
}

// MarshalJSON renders structured values as-is and scalars as JSON strings.
func (v SlotValue) MarshalJSON() ([]byte, error) {
	if v.Kind == SlotKindStructured {
		return v.Structured, nil
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON mirrors SlotValueFromJSON.
func (v *SlotValue) UnmarshalJSON(data []byte) error {
	*v = SlotValueFromJSON(data)
	return nil
}
