package shading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texlink/internal/model"
)

func TestBuildPlan_SkipsNotFoundAndKeepsOrder(t *testing.T) {
	result := model.LinkResult{
		model.BaseColor: {Found: true, Path: "Wall_BaseColor.png"},
		model.Roughness: {Found: false},
		model.Normal:    {Found: true, Path: "Wall_Normal.png"},
		model.Metallic:  {Found: false},
		model.Height:    {Found: true, Path: "Wall_Height.exr"},
		model.Opacity:   {Found: false},
	}

	plan := BuildPlan(result)
	require.Len(t, plan, 3)
	assert.Equal(t, model.BaseColor, plan[0].MapType)
	assert.Equal(t, model.Normal, plan[1].MapType)
	assert.Equal(t, model.Height, plan[2].MapType)
	assert.Equal(t, "Wall_Height.exr", plan[2].Path)
	assert.Equal(t, model.AdjustDisplacement, plan[2].Policy.Adjustment)
}

func TestApply_AdjustmentPolicies(t *testing.T) {
	result := model.LinkResult{
		model.BaseColor: {Found: true, Path: "Wall_BaseColor.png"},
		model.Roughness: {Found: true, Path: "Wall_Roughness.png"},
		model.Opacity:   {Found: true, Path: "Wall_Opacity.png"},
	}

	graph := &MemoryGraph{}
	require.NoError(t, Apply(graph, "material", BuildPlan(result)))

	joined := strings.Join(graph.Actions, "\n")

	// BaseColor: sRGB texture plus a color-correct node.
	assert.Contains(t, joined, "Wall_BaseColor.png")
	assert.Contains(t, joined, "colorSpace = sRGB")
	assert.Contains(t, joined, string(model.AdjustColorCorrect))

	// Roughness: raw colorspace plus a range node.
	assert.Contains(t, joined, "colorSpace = Raw")
	assert.Contains(t, joined, string(model.AdjustRange))

	// Opacity: no adjustment node, but the material goes thin-walled.
	assert.NotContains(t, joined, string(model.AdjustNormalMap))
	assert.Contains(t, joined, "set material.thinWalled = 1")
}

func TestApply_EmptyPlanIsFine(t *testing.T) {
	graph := &MemoryGraph{}
	require.NoError(t, Apply(graph, "material", nil))
	assert.Empty(t, graph.Actions)
}
