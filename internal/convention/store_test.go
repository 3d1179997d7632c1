package convention

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texlink/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "broken.json", `{"BaseColor": [`)
	_, _, err := Load(path)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoad_SchemaError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"alias list is not an array", `{"BaseColor": {"name": "BaseColor"}}`},
		{"alias name is not a string", `{"BaseColor": [{"name": 5}]}`},
		{"alias name is empty", `{"BaseColor": [{"name": ""}]}`},
		{"missing name key", `{"Roughness": [{"locked": true}]}`},
		{"udim is not a boolean", `{"BaseColor": [], "udim": "yes"}`},
		{"no map-type keys", `{"udim": true, "prefer_exr": false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "conv.json", tt.content)
			_, _, err := Load(path)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestLoad_DefaultsMissingMapTypes(t *testing.T) {
	path := writeFile(t, "conv.json", `{"Roughness": [{"name": "Rough", "locked": false}], "udim": true}`)
	conv, settings, err := Load(path)
	require.NoError(t, err)

	// Present key kept as-is.
	assert.Equal(t, []model.AliasRecord{{Name: "Rough"}}, conv[model.Roughness])
	// Absent BaseColor gets the locked defaults so resolution has an anchor.
	assert.Equal(t, Default()[model.BaseColor], conv[model.BaseColor])
	// Other absent types get empty (non-nil) lists.
	for _, mt := range []model.MapType{model.Normal, model.Metallic, model.Height, model.Opacity} {
		assert.NotNil(t, conv[mt])
		assert.Empty(t, conv[mt])
	}
	assert.True(t, settings.UDIM)
	assert.False(t, settings.PreferEXR)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := writeFile(t, "conv.json", `{"BaseColor": [{"name": "BaseColor", "locked": true}], "Specular": [{"name": "Specular"}], "future_flag": 3}`)
	conv, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.AliasRecord{{Name: "BaseColor", Locked: true}}, conv[model.BaseColor])
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"conv.json", "conv.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			conv := Default()
			require.NoError(t, AddAlias(conv, model.Roughness, "Gloss"))
			settings := model.Settings{UDIM: true, PreferEXR: true}

			require.NoError(t, Save(path, conv, settings))
			got, gotSettings, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, conv, got)
			assert.Equal(t, settings, gotSettings)

			// Save-load-save is stable too.
			require.NoError(t, Save(path, got, gotSettings))
			got2, gotSettings2, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, got, got2)
			assert.Equal(t, gotSettings, gotSettings2)
		})
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conv.json")
	require.NoError(t, Save(path, Default(), model.Settings{}))
	require.NoError(t, Save(path, Default(), model.Settings{UDIM: true}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "conv.json", entries[0].Name())
}

func TestAddAlias(t *testing.T) {
	conv := Default()

	require.NoError(t, AddAlias(conv, model.Roughness, "Gloss"))
	assert.Equal(t, model.AliasRecord{Name: "Gloss"}, conv[model.Roughness][len(conv[model.Roughness])-1])

	// Exact duplicate rejected.
	assert.ErrorIs(t, AddAlias(conv, model.Roughness, "Gloss"), ErrDuplicateAlias)
	// Case-insensitive duplicate rejected.
	assert.ErrorIs(t, AddAlias(conv, model.Roughness, "GLOSS"), ErrDuplicateAlias)
	// Same name under another map type is fine.
	assert.NoError(t, AddAlias(conv, model.Height, "Gloss"))

	assert.Error(t, AddAlias(conv, model.Normal, "   "))
}

func TestAddAliases_BatchRejectedOnDuplicate(t *testing.T) {
	conv := Default()
	before := len(conv[model.Normal])

	err := AddAliases(conv, model.Normal, []string{"Bump", "normal"})
	assert.ErrorIs(t, err, ErrDuplicateAlias)
	// Nothing from the batch was added.
	assert.Len(t, conv[model.Normal], before)

	require.NoError(t, AddAliases(conv, model.Normal, []string{"Bump", " NormalMap "}))
	assert.Equal(t, []model.AliasRecord{{Name: "Bump"}, {Name: "NormalMap"}}, conv[model.Normal][before:])
}

func TestDeleteAlias(t *testing.T) {
	conv := Default()
	require.NoError(t, AddAlias(conv, model.BaseColor, "Col"))

	// Locked records cannot be deleted and the list is unchanged.
	before := append([]model.AliasRecord(nil), conv[model.BaseColor]...)
	assert.ErrorIs(t, DeleteAlias(conv, model.BaseColor, "BaseColor"), ErrLockedAlias)
	assert.Equal(t, before, conv[model.BaseColor])

	// Unlocked records are removed.
	require.NoError(t, DeleteAlias(conv, model.BaseColor, "Col"))
	for _, rec := range conv[model.BaseColor] {
		assert.NotEqual(t, "Col", rec.Name)
	}

	// Deleting an absent name is a no-op.
	assert.NoError(t, DeleteAlias(conv, model.BaseColor, "Nope"))
}

func TestSetFlag(t *testing.T) {
	var s model.Settings
	require.NoError(t, SetFlag(&s, "udim", true))
	require.NoError(t, SetFlag(&s, "prefer_exr", true))
	assert.True(t, s.UDIM)
	assert.True(t, s.PreferEXR)

	require.NoError(t, SetFlag(&s, "udim", false))
	assert.False(t, s.UDIM)

	assert.Error(t, SetFlag(&s, "bogus", true))
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "conv.yaml", `
BaseColor:
  - name: BaseColor
    locked: true
  - name: Diffuse
    locked: false
udim: true
prefer_exr: true
`)
	conv, settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.AliasRecord{
		{Name: "BaseColor", Locked: true},
		{Name: "Diffuse"},
	}, conv[model.BaseColor])
	assert.True(t, settings.UDIM)
	assert.True(t, settings.PreferEXR)
}
