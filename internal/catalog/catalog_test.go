package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/flowlift/internal/workout"
)

func TestDefault_HasBuiltinPrograms(t *testing.T) {
	c := Default()

	var ids []string
	for _, p := range c.All() {
		ids = append(ids, p.ID)
		assert.NotEmpty(t, p.Exercises, p.ID)
	}
	assert.Equal(t, []string{"push", "pull", "legs", "upper", "lower"}, ids)

	legs, ok := c.Find("legs")
	require.True(t, ok)
	assert.Equal(t, "Legs", legs.Name)

	_, ok = c.Find("cardio")
	assert.False(t, ok)
}

func TestCatalog_SelectKeepsCatalogOrder(t *testing.T) {
	c := Default()
	got := c.Select([]string{"legs", "nope", "push"})
	require.Len(t, got, 2)
	assert.Equal(t, "push", got[0].ID)
	assert.Equal(t, "legs", got[1].ID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
programs:
  - id: core
    name: Core
    exercises:
      - id: plank
        name: Plank
        equipment: [none]
        sets: 3
        reps: 1
        rest: 30
`), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	p, ok := c.Find("core")
	require.True(t, ok)
	require.Len(t, p.Exercises, 1)
	assert.Equal(t, workout.ExerciseDescriptor{
		ID: "plank", Name: "Plank", Equipment: []workout.Equipment{workout.EquipmentNone},
		DefaultSets: 3, DefaultReps: 1, DefaultRest: 30,
	}, p.Exercises[0])
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Parse([]byte("programs: [}"))
	assert.ErrorContains(t, err, "parsing catalog")

	_, err = Parse([]byte("programs: []"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
programs:
  - id: a
    exercises: [{id: x, name: X, sets: 0, reps: 1}]
`))
	assert.ErrorContains(t, err, `program "a"`)

	_, err = Parse([]byte(`
programs:
  - id: a
  - id: a
`))
	assert.ErrorContains(t, err, "duplicate")
}

func TestProgram_Ref(t *testing.T) {
	p, _ := Default().Find("push")
	ref := p.Ref()
	assert.Equal(t, p.ID, ref.ID)
	assert.Equal(t, p.Exercises, ref.Exercises)

	ref.Exercises[0].Name = "changed"
	again, _ := Default().Find("push")
	assert.NotEqual(t, "changed", again.Exercises[0].Name)
}

func TestLocation(t *testing.T) {
	loc, err := ParseLocation("GYM")
	require.NoError(t, err)
	assert.Equal(t, LocationGym, loc)
	assert.ElementsMatch(t, workout.AllEquipment, loc.DefaultEquipment())

	assert.Equal(t, []workout.Equipment{
		workout.EquipmentBodyweight, workout.EquipmentDumbbell, workout.EquipmentBench,
	}, LocationHome.DefaultEquipment())

	_, err = ParseLocation("park")
	assert.Error(t, err)
}
