package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()

	for _, name := range []string{"sunny", "clouds", "rain", "snow"} {
		st, err := table.Lookup(name)
		require.NoError(t, err, name)
		assert.NoError(t, st.Validate())
	}

	_, err := table.Lookup("sunnny")
	var unknown *UnknownStateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sunnny", unknown.Name)
	assert.Equal(t, "sunny", unknown.Suggestion)

	_, err = table.Lookup("thunderstorm")
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Suggestion)
}

func TestTable_ResolveFallsBackToDefault(t *testing.T) {
	table := DefaultTable()
	st, name, err := table.Resolve("hail")
	assert.Error(t, err)
	assert.Equal(t, "sunny", name)
	sunny, _ := table.Lookup("sunny")
	assert.Equal(t, sunny, st)
}

func TestTable_ConfiguredSet(t *testing.T) {
	states := DefaultStates()
	states["fog"] = states["clouds"]

	table, err := NewTable([]string{"fog", "snow"}, states, "snow")
	require.NoError(t, err)
	assert.Equal(t, []string{"fog", "snow"}, table.Names())
	assert.Equal(t, "snow", table.Default())
	assert.False(t, table.Has("sunny"))

	_, err = NewTable([]string{"fog", "missing"}, states, "")
	assert.Error(t, err)

	_, err = NewTable([]string{"fog"}, states, "rain")
	assert.Error(t, err)

	bad := states["rain"]
	bad.Fog.Near, bad.Fog.Far = 300, 100
	_, err = NewTable([]string{"rain"}, map[string]EnvironmentState{"rain": bad}, "")
	assert.Error(t, err)
}

func TestColor_YAML(t *testing.T) {
	var fog Fog
	require.NoError(t, yaml.Unmarshal([]byte("color: \"#555566\"\nnear: 20\nfar: 200\n"), &fog))
	assert.Equal(t, "#555566", fog.Color.Hex())
	assert.Equal(t, 20.0, fog.Near)

	out, err := yaml.Marshal(fog)
	require.NoError(t, err)
	var back Fog
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, fog, back)

	assert.Error(t, yaml.Unmarshal([]byte("color: nope\n"), &fog))
}

func TestEngine_StartsAtDefault(t *testing.T) {
	table := DefaultTable()
	e := NewEngine(table, DefaultOptions())
	sunny, _ := table.Lookup("sunny")
	assert.Equal(t, sunny, e.Current())
	assert.Equal(t, "sunny", e.Target())
	assert.True(t, e.Converged())
	assert.False(t, e.Advance(0.016))
}

func TestEngine_ConvergesMonotonically(t *testing.T) {
	table := DefaultTable()
	e := NewEngine(table, DefaultOptions())
	require.NoError(t, e.SetTarget("rain"))
	rain, _ := table.Lookup("rain")

	prev := distances(e.Current(), rain)
	snapped := false
	for i := 0; i < 1000 && !snapped; i++ {
		snapped = e.Advance(1.0 / 60.0)
		d := distances(e.Current(), rain)
		for k := range d {
			assert.LessOrEqual(t, d[k], prev[k]+1e-12, "field %d tick %d", k, i)
		}
		prev = d
	}
	require.True(t, snapped)
	assert.Equal(t, rain, e.Current())
	assert.True(t, e.Converged())
}

func TestEngine_SaturatedFactorSnapsExactly(t *testing.T) {
	table := DefaultTable()
	e := NewEngine(table, DefaultOptions())
	require.NoError(t, e.SetTarget("snow"))

	assert.True(t, e.Advance(5))
	snow, _ := table.Lookup("snow")
	assert.Equal(t, snow, e.Current())
}

func TestEngine_NegativeDeltaDoesNothing(t *testing.T) {
	e := NewEngine(DefaultTable(), DefaultOptions())
	require.NoError(t, e.SetTarget("clouds"))
	before := e.Current()
	e.Advance(-1)
	assert.Equal(t, before, e.Current())
}

func TestEngine_RedirectKeepsCurrent(t *testing.T) {
	table := DefaultTable()
	e := NewEngine(table, DefaultOptions())
	require.NoError(t, e.SetTarget("rain"))
	for i := 0; i < 10; i++ {
		e.Advance(1.0 / 60.0)
	}
	mid := e.Current()

	require.NoError(t, e.SetTarget("snow"))
	assert.Equal(t, mid, e.Current(), "retarget must not move current")

	snow, _ := table.Lookup("snow")
	dt := 1.0 / 60.0
	e.Advance(dt)
	f := dt * DefaultOptions().TransitionSpeed
	assert.InDelta(t, mid.Ambient+(snow.Ambient-mid.Ambient)*f, e.Current().Ambient, 1e-12)
	assert.InDelta(t, mid.Fog.Far+(snow.Fog.Far-mid.Fog.Far)*f, e.Current().Fog.Far, 1e-9)
}

func TestEngine_UnknownTargetFallsBack(t *testing.T) {
	e := NewEngine(DefaultTable(), DefaultOptions())
	require.NoError(t, e.SetTarget("snow"))
	err := e.SetTarget("blizzard")
	var unknown *UnknownStateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sunny", e.Target())
}

func TestBlend_ColorIsLinearRGB(t *testing.T) {
	a := MustHex("#000000")
	b := MustHex("#ffffff")
	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-9)
	assert.InDelta(t, 0.5, mid.G, 1e-9)
	assert.InDelta(t, 0.5, mid.B, 1e-9)
}

func TestStateSet_YAMLOverlaysByField(t *testing.T) {
	states := DefaultStates()
	require.NoError(t, yaml.Unmarshal([]byte(`
clouds:
  cloud_density: 0.95
  sky: {turbidity: 14}
`), &states))

	def := DefaultStates()["clouds"]
	clouds := states["clouds"]
	assert.Equal(t, 0.95, clouds.CloudDensity)
	assert.Equal(t, 14.0, clouds.Sky.Turbidity)
	assert.Equal(t, def.Sky.SunPosition, clouds.Sky.SunPosition)
	assert.Equal(t, def.Fog, clouds.Fog)
	assert.Equal(t, def.Ambient, clouds.Ambient)
	assert.Len(t, states, 4)

	var fresh StateSet
	require.NoError(t, yaml.Unmarshal([]byte(`mist: {fog: {near: 1, far: 40}}`), &fresh))
	assert.Error(t, fresh["mist"].Validate(), "a state without sky parameters is not renderable")

	assert.Error(t, yaml.Unmarshal([]byte(`[sunny]`), &fresh))
}

func distances(a, b EnvironmentState) []float64 {
	return []float64{
		math.Abs(a.Ambient - b.Ambient),
		math.Abs(a.PointLight - b.PointLight),
		math.Abs(a.Fog.Near - b.Fog.Near),
		math.Abs(a.Fog.Far - b.Fog.Far),
		math.Abs(a.Fog.Color.R - b.Fog.Color.R),
		math.Abs(a.Fog.Color.G - b.Fog.Color.G),
		math.Abs(a.Fog.Color.B - b.Fog.Color.B),
		a.Sky.SunPosition.Sub(b.Sky.SunPosition).Len(),
		math.Abs(a.Sky.Inclination - b.Sky.Inclination),
		math.Abs(a.Sky.Azimuth - b.Sky.Azimuth),
		math.Abs(a.Sky.MieCoefficient - b.Sky.MieCoefficient),
		math.Abs(a.Sky.MieDirectionalG - b.Sky.MieDirectionalG),
		math.Abs(a.Sky.Rayleigh - b.Sky.Rayleigh),
		math.Abs(a.Sky.Turbidity - b.Sky.Turbidity),
		math.Abs(a.CloudDensity - b.CloudDensity),
		math.Abs(a.RainIntensity - b.RainIntensity),
		math.Abs(a.SnowIntensity - b.SnowIntensity),
	}
}
