package model

import (
	"fmt"
	"strings"
)

// MapType identifies one of the texture channels the linker knows about.
type MapType string

const (
	BaseColor MapType = "BaseColor"
	Roughness MapType = "Roughness"
	Normal    MapType = "Normal"
	Metallic  MapType = "Metallic"
	Height    MapType = "Height"
	Opacity   MapType = "Opacity"
)

// AllMapTypes lists every map type in display (and plan) order.
var AllMapTypes = []MapType{BaseColor, Roughness, Normal, Metallic, Height, Opacity}

// ParseMapType resolves a user-supplied name (e.g. a --type flag value) to a
// MapType. Matching is case-insensitive.
func ParseMapType(s string) (MapType, error) {
	for _, t := range AllMapTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown map type %q (expected one of %v)", s, AllMapTypes)
}

// AdjustmentKind names the post-processing node inserted between a linked
// texture and the material input.
type AdjustmentKind string

const (
	AdjustNone         AdjustmentKind = ""
	AdjustColorCorrect AdjustmentKind = "colorCorrect"
	AdjustRange        AdjustmentKind = "range"
	AdjustNormalMap    AdjustmentKind = "normalMap"
	AdjustDisplacement AdjustmentKind = "displacement"
)

// Policy is the per-map-type shading behavior. Policies are data, not
// branches: the planner reads them off the map type instead of switching on
// names.
type Policy struct {
	ColorSpace   string         // Colorspace set on the texture node.
	Adjustment   AdjustmentKind // Node inserted downstream, if any.
	MaterialAttr string         // Material input the chain ultimately feeds.
	ThinWalled   bool           // Opacity: the material is flagged thin-walled.
}

var policies = map[MapType]Policy{
	BaseColor: {ColorSpace: "sRGB", Adjustment: AdjustColorCorrect, MaterialAttr: "baseColor"},
	Roughness: {ColorSpace: "Raw", Adjustment: AdjustRange, MaterialAttr: "specularRoughness"},
	Normal:    {ColorSpace: "Raw", Adjustment: AdjustNormalMap, MaterialAttr: "normalCamera"},
	Metallic:  {ColorSpace: "Raw", Adjustment: AdjustRange, MaterialAttr: "metalness"},
	Height:    {ColorSpace: "Raw", Adjustment: AdjustDisplacement, MaterialAttr: "displacementShader"},
	Opacity:   {ColorSpace: "Raw", Adjustment: AdjustNone, MaterialAttr: "opacity", ThinWalled: true},
}

// Policy returns the shading policy for the map type.
func (t MapType) Policy() Policy {
	return policies[t]
}

// AliasRecord is one naming-convention entry for a map type. Locked records
// are the shipped defaults and cannot be deleted through the Name Manager.
type AliasRecord struct {
	Name   string `json:"name" yaml:"name"`
	Locked bool   `json:"locked" yaml:"locked"`
}

// Convention maps each map type to its ordered alias list. Order is
// insertion/display order and also substitution priority during resolution.
type Convention map[MapType][]AliasRecord

// Settings are the two process-wide toggles persisted alongside the
// convention.
type Settings struct {
	UDIM      bool `json:"udim" yaml:"udim"`
	PreferEXR bool `json:"prefer_exr" yaml:"prefer_exr"`
}

// TexturePathInfo is the decomposition of a reference texture path around
// the alias that anchored it. Derived, never persisted.
type TexturePathInfo struct {
	MapType      MapType // Declared type of the reference file.
	Dir          string  // Directory part, trailing separator preserved.
	Prefix       string  // Stem text before the matched alias.
	MatchedAlias string  // Alias as it appears in the filename (original casing).
	Suffix       string  // Stem text after the alias, before LOD/tile tokens.
	LODSuffix    string  // LOD token, e.g. "_LOD0", or "".
	UDIMToken    string  // Tile token, e.g. "1001" or "<UDIM>", or "".
	Ext          string  // Extension including the dot.
}

// Path reconstructs the full reference path from the decomposition.
func (i TexturePathInfo) Path() string {
	name := i.Prefix + i.MatchedAlias + i.Suffix + i.LODSuffix
	if i.UDIMToken != "" {
		name += "." + i.UDIMToken
	}
	return i.Dir + name + i.Ext
}

// Resolution is the per-map-type outcome of a resolve pass. Not-found is a
// partial result, not an error.
type Resolution struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// LinkResult maps every map type (including the reference itself) to its
// resolution.
type LinkResult map[MapType]Resolution
