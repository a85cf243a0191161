package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeature_Unmarshal(t *testing.T) {
	var f Feature
	err := json.Unmarshal([]byte(`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"A"}}`), &f)
	require.NoError(t, err)

	assert.Equal(t, TypeFeature, f.Type)
	assert.Equal(t, KindPoint, f.Geometry.Kind())
	assert.Equal(t, "A", f.Properties[PropName])
}

func TestFeature_UnmarshalDefaultsTypeAndNullProperties(t *testing.T) {
	var f Feature
	err := json.Unmarshal([]byte(`{"geometry":{"type":"Point","coordinates":[1,2]},"properties":null}`), &f)
	require.NoError(t, err)

	assert.Equal(t, TypeFeature, f.Type)
	assert.Nil(t, f.Properties)
}

func TestFeature_UnmarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong type", `{"type":"FeatureCollection","geometry":{"type":"Point","coordinates":[1,2]}}`},
		{"missing geometry", `{"type":"Feature","properties":{}}`},
		{"null geometry", `{"type":"Feature","geometry":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Feature
			err := json.Unmarshal([]byte(tt.input), &f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGeometry))
		})
	}
}

func TestFeatureCollection_EmptySerializesAsArray(t *testing.T) {
	data, err := json.Marshal(NewFeatureCollection(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))

	// Нулевое значение тоже не должно давать null
	data, err = json.Marshal(FeatureCollection{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestFeatureCollection_PreservesOrder(t *testing.T) {
	fc := NewFeatureCollection([]Feature{
		NewFeature(NewPoint(1, 1), Properties{PropName: "first"}),
		NewFeature(NewPoint(2, 2), Properties{PropName: "second"}),
	})

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Features []struct {
			Properties map[string]string `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Features, 2)
	assert.Equal(t, "first", decoded.Features[0].Properties["name"])
	assert.Equal(t, "second", decoded.Features[1].Properties["name"])
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	assert.False(t, TaskPending.IsTerminal())
	assert.True(t, TaskSuccess.IsTerminal())
	assert.True(t, TaskFailure.IsTerminal())
	assert.Equal(t, "task:abc", TaskKey("abc"))
}
