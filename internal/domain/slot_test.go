package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotValueFromJSONClassification(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind SlotKind
		text string
	}{
		{"object", `{"a":1}`, SlotKindStructured, `{"a":1}`},
		{"array", `[1,2,3]`, SlotKindStructured, `[1,2,3]`},
		{"string", `"battery"`, SlotKindScalar, "battery"},
		{"number", `42`, SlotKindScalar, "42"},
		{"bool", `true`, SlotKindScalar, "true"},
		{"null", `null`, SlotKindScalar, "null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := SlotValueFromJSON(json.RawMessage(tc.raw))
			assert.Equal(t, tc.kind, v.Kind)
			assert.Equal(t, tc.text, v.Encoded())
		})
	}
}

func TestSlotValueEncodeDecodeSymmetry(t *testing.T) {
	structured := StructuredSlot(json.RawMessage(`{"layers":4}`))
	decoded := DecodeSlotValue(structured.Kind, structured.Encoded())
	assert.Equal(t, structured, decoded)

	scalar := ScalarSlot("3.3V")
	decoded = DecodeSlotValue(scalar.Kind, scalar.Encoded())
	assert.Equal(t, scalar, decoded)
}

func TestSlotValueMarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]SlotValue{
		"power":       ScalarSlot("battery"),
		"constraints": StructuredSlot(json.RawMessage(`{"max_width_mm":80}`)),
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"power":"battery","constraints":{"max_width_mm":80}}`, string(out))
}
