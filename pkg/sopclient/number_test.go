package sopclient_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestNumber_Unmarshal(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		set   bool
		value float64
	}{
		{"plain number", `100.5`, true, 100.5},
		{"quoted decimal", `"100.5"`, true, 100.5},
		{"quoted integer", `"42"`, true, 42},
		{"negative", `"-3.25"`, true, -3.25},
		{"zero", `0`, true, 0},
		{"null", `null`, false, 0},
		{"empty string", `""`, false, 0},
		{"whitespace string", `"  "`, false, 0},
		{"garbage string", `"n/a"`, false, 0},
		{"infinity string", `"Inf"`, false, 0},
		{"nan string", `"NaN"`, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n sopclient.Number
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &n))
			assert.Equal(t, tc.set, n.Set)
			assert.Equal(t, tc.value, n.Value)
		})
	}
}

func TestNumber_UnmarshalNeverFailsInsideStruct(t *testing.T) {
	var out struct {
		Qty sopclient.Number `json:"qty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"qty":"totally not a number"}`), &out))
	assert.False(t, out.Qty.Set)
}

func TestNumber_Marshal(t *testing.T) {
	raw, err := json.Marshal(sopclient.Num(12.5))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(raw))

	raw, err = json.Marshal(sopclient.Number{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))
}

func TestNumber_OrAndString(t *testing.T) {
	assert.Equal(t, 7.5, sopclient.Num(7.5).Or(0))
	assert.Equal(t, 99.0, sopclient.Number{}.Or(99))

	assert.Equal(t, "100.5", sopclient.Num(100.5).String())
	assert.Equal(t, "-", sopclient.Number{}.String())
}
