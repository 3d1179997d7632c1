package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapType(t *testing.T) {
	tests := []struct {
		in      string
		want    MapType
		wantErr bool
	}{
		{"BaseColor", BaseColor, false},
		{"basecolor", BaseColor, false},
		{"ROUGHNESS", Roughness, false},
		{"height", Height, false},
		{"Specular", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMapType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicies(t *testing.T) {
	assert.Equal(t, AdjustColorCorrect, BaseColor.Policy().Adjustment)
	assert.Equal(t, "sRGB", BaseColor.Policy().ColorSpace)

	assert.Equal(t, AdjustRange, Roughness.Policy().Adjustment)
	assert.Equal(t, AdjustRange, Metallic.Policy().Adjustment)
	assert.Equal(t, AdjustNormalMap, Normal.Policy().Adjustment)
	assert.Equal(t, AdjustDisplacement, Height.Policy().Adjustment)

	op := Opacity.Policy()
	assert.Equal(t, AdjustNone, op.Adjustment)
	assert.True(t, op.ThinWalled)

	// Every map type other than BaseColor samples raw data.
	for _, mt := range AllMapTypes[1:] {
		assert.Equal(t, "Raw", mt.Policy().ColorSpace, "%s", mt)
	}
}

func TestTexturePathInfoPath(t *testing.T) {
	info := TexturePathInfo{
		Dir:          "textures/",
		Prefix:       "Wall_",
		MatchedAlias: "BaseColor",
		Suffix:       "_4K",
		LODSuffix:    "_LOD0",
		UDIMToken:    "1001",
		Ext:          ".png",
	}
	assert.Equal(t, "textures/Wall_BaseColor_4K_LOD0.1001.png", info.Path())

	info.UDIMToken = ""
	assert.Equal(t, "textures/Wall_BaseColor_4K_LOD0.png", info.Path())
}
