// Package shading turns resolution results into shading-network requests.
// The linker never touches a host scene graph directly: it builds a Plan and
// drives the SceneGraph interface a host integration implements.
package shading

import (
	"fmt"

	"texlink/internal/model"
)

// NodeHandle identifies a node created in the host scene graph.
type NodeHandle string

// SceneGraph is the surface a host integration exposes to the linker.
type SceneGraph interface {
	CreateOrLinkTextureNode(t model.MapType, path string) (NodeHandle, error)
	CreateAdjustmentNode(kind model.AdjustmentKind, attachedTo NodeHandle) (NodeHandle, error)
	SetNodeAttribute(node NodeHandle, attr, value string) error
}

// Step is one planned texture link: the resolved file plus the map type's
// shading policy.
type Step struct {
	MapType model.MapType
	Path    string
	Policy  model.Policy
}

// BuildPlan orders the found resolutions into link steps. Map types that did
// not resolve are skipped; partial plans are the common case.
func BuildPlan(result model.LinkResult) []Step {
	var plan []Step
	for _, t := range model.AllMapTypes {
		res, ok := result[t]
		if !ok || !res.Found {
			continue
		}
		plan = append(plan, Step{MapType: t, Path: res.Path, Policy: t.Policy()})
	}
	return plan
}

// Apply drives the scene graph through the plan: texture node, colorspace,
// adjustment node, and any material attributes the policy requires. material
// is the host's handle for the material being populated.
func Apply(sg SceneGraph, material NodeHandle, plan []Step) error {
	for _, s := range plan {
		node, err := sg.CreateOrLinkTextureNode(s.MapType, s.Path)
		if err != nil {
			return fmt.Errorf("link %s: %w", s.MapType, err)
		}
		if err := sg.SetNodeAttribute(node, "colorSpace", s.Policy.ColorSpace); err != nil {
			return fmt.Errorf("link %s: %w", s.MapType, err)
		}
		if s.Policy.Adjustment != model.AdjustNone {
			if _, err := sg.CreateAdjustmentNode(s.Policy.Adjustment, node); err != nil {
				return fmt.Errorf("link %s: %w", s.MapType, err)
			}
		}
		if s.Policy.ThinWalled {
			if err := sg.SetNodeAttribute(material, "thinWalled", "1"); err != nil {
				return fmt.Errorf("link %s: %w", s.MapType, err)
			}
		}
	}
	return nil
}

// MemoryGraph is a SceneGraph that records requested actions instead of
// touching a host. The CLI uses it for plan output; tests assert on it.
type MemoryGraph struct {
	Actions []string
	counter int
}

func (g *MemoryGraph) CreateOrLinkTextureNode(t model.MapType, path string) (NodeHandle, error) {
	g.counter++
	h := NodeHandle(fmt.Sprintf("%s_File%d", t, g.counter))
	g.Actions = append(g.Actions, fmt.Sprintf("texture %s <- %s", h, path))
	return h, nil
}

func (g *MemoryGraph) CreateAdjustmentNode(kind model.AdjustmentKind, attachedTo NodeHandle) (NodeHandle, error) {
	g.counter++
	h := NodeHandle(fmt.Sprintf("%s_Node%d", kind, g.counter))
	g.Actions = append(g.Actions, fmt.Sprintf("adjust %s -> %s", attachedTo, h))
	return h, nil
}

func (g *MemoryGraph) SetNodeAttribute(node NodeHandle, attr, value string) error {
	g.Actions = append(g.Actions, fmt.Sprintf("set %s.%s = %s", node, attr, value))
	return nil
}
