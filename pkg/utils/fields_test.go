package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code int    `json:"code"`
}

func rendered(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestSelectFields_Object(t *testing.T) {
	in := fixture{ID: "f-1", Name: "Biashara Dispensary", Code: 10001}

	out, err := SelectFields(in, "name,code")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Biashara Dispensary","code":10001}`, rendered(t, out))
}

func TestSelectFields_List(t *testing.T) {
	in := []fixture{
		{ID: "f-1", Name: "Biashara Dispensary", Code: 10001},
		{ID: "f-2", Name: "Milimani Clinic", Code: 10002},
	}

	out, err := SelectFields(in, "id")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f-1"},{"id":"f-2"}]`, rendered(t, out))
}

func TestSelectFields_UnknownNamesIgnored(t *testing.T) {
	in := fixture{ID: "f-1", Name: "Biashara Dispensary"}

	out, err := SelectFields(in, "name, nope ,")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Biashara Dispensary"}`, rendered(t, out))
}

func TestSelectFields_EmptySelectorReturnsInput(t *testing.T) {
	in := fixture{ID: "f-1"}

	out, err := SelectFields(in, "  ")
	require.NoError(t, err)
	assert.Equal(t, any(in), out)
}

func TestSelectFields_NonObjectUntouched(t *testing.T) {
	out, err := SelectFields("just a string", "name")
	require.NoError(t, err)
	assert.Equal(t, any("just a string"), out)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 40, ClampLimit(40, 20, 100))
	assert.Equal(t, 100, ClampLimit(400, 20, 100))
}
