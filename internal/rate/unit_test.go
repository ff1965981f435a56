package rate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_Suffix(t *testing.T) {
	assert.Equal(t, "b/s", Bits.Suffix())
	assert.Equal(t, "B/s", Bytes.Suffix())
}

func TestUnit_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Unit Unit `json:"unit"`
	}

	data, err := json.Marshal(payload{Unit: Bytes})
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit":"bytes"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"unit":"bits"}`), &decoded))
	assert.Equal(t, Bits, decoded.Unit)
}

func TestUnit_UnmarshalText_Unknown(t *testing.T) {
	var u Unit
	err := u.UnmarshalText([]byte("nibbles"))
	assert.Error(t, err)
}
