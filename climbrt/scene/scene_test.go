package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/ascent/climbrt/collision"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// near compares vectors by distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestDemoCragSpawns(t *testing.T) {
	def := DemoCrag()
	require.Equal(t, "crag", def.Name)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, def.Spawn.Position)

	w := collision.NewWorld(4)
	spawned, err := Spawn(w, def)
	require.NoError(t, err)
	assert.Equal(t, len(def.Objects), w.Len())

	cliff, ok := w.Lookup(spawned.Lookup("cliff"))
	require.True(t, ok)
	assert.True(t, cliff.Climbable())

	floor, ok := w.Lookup(spawned.Lookup("floor"))
	require.True(t, ok)
	assert.False(t, floor.Climbable())

	zone, ok := w.Lookup(spawned.Lookup("spawn_zone"))
	require.True(t, ok)
	assert.True(t, zone.Trigger)

	hit, ok := w.Raycast(mgl32.Vec3{-8, 5, 0}, mgl32.Vec3{0, -1, 0}, 10)
	require.True(t, ok)
	assert.Equal(t, spawned.Lookup("ramp"), hit.Shape)
	assert.InDelta(t, 0.7071, hit.Normal.Y(), 1e-3)
}

func TestParseRejectsBadObjects(t *testing.T) {
	tests := map[string]string{
		"unknown shape":   "objects:\n  - shape: cone\n",
		"sphere radius":   "objects:\n  - shape: sphere\n    radius: 0\n",
		"negative extent": "objects:\n  - shape: box\n    half_extents: [1, -1, 1]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene))
		})
	}

	_, err := Parse([]byte("objects: [oops"))
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	doc := "name: tiny\nobjects:\n  - name: rock\n    shape: sphere\n    position: [1, 2, 3]\n    radius: 0.5\n    climbable: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	def, err := Load(path)
	require.NoError(t, err)
	require.Len(t, def.Objects, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, def.Objects[0].Position)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestObjectRotation(t *testing.T) {
	o := ObjectDef{Rotation: mgl32.Vec3{0, 90, 0}}
	fwd := o.Quat().Rotate(mgl32.Vec3{0, 0, 1})
	assert.True(t, near(fwd, mgl32.Vec3{1, 0, 0}, 1e-5))
	assert.Equal(t, mgl32.QuatIdent(), ObjectDef{}.Quat())
}
