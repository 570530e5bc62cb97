package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadPatchDistinguishesAbsentNullAndValue(t *testing.T) {
	var patch LeadPatch
	err := json.Unmarshal([]byte(`{"name":"Anna","company":null,"stage_id":4}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.Name.Set)
	assert.False(t, patch.Name.Null)
	assert.Equal(t, "Anna", patch.Name.Value)

	assert.True(t, patch.Company.Set)
	assert.True(t, patch.Company.Null)
	assert.Nil(t, patch.Company.Arg())

	assert.True(t, patch.StageID.Set)
	assert.Equal(t, int64(4), patch.StageID.Arg())

	assert.False(t, patch.Phone.Set)
	assert.False(t, patch.Priority.Set)
	assert.False(t, patch.Empty())
}

func TestLeadPatchEmptyBody(t *testing.T) {
	var patch LeadPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
	assert.True(t, patch.Empty())
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var patch LeadPatch
	err := json.Unmarshal([]byte(`{"stage_id":"first"}`), &patch)
	assert.Error(t, err)
}
