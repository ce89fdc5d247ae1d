package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmfb/entitylogger/internal/snapshot"
)

func TestMarshalState_NullColumns(t *testing.T) {
	r := NewResult()
	r.Ticks = 1
	r.Entities = []snapshot.EntityRecord{{Name: "Husk", Category: snapshot.Monster}}

	data, err := MarshalState(NewStateSnapshot("nulls", r))
	require.NoError(t, err)

	got := string(data)
	assert.Contains(t, got, `"identifier": null`)
	assert.Contains(t, got, `"health": null`)
	assert.Contains(t, got, `"entity_type": "MONSTER"`)
	assert.Contains(t, got, `"world_time": null`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestMarshalState_EmptyEntitiesIsArray(t *testing.T) {
	data, err := MarshalState(NewStateSnapshot("empty", NewResult()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entities": []`)
}
