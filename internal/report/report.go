// Package report renders a plain-text diagnostic report of a resolution run.
package report

import (
	"fmt"
	"strings"

	"texlink/internal/model"
	"texlink/internal/resolve"
)

// Generate builds the report. verbose adds the full candidate probe log so a
// user can see exactly which filenames were tested for each map type.
func Generate(info model.TexturePathInfo, result model.LinkResult, probes []resolve.Probe, settings model.Settings, verbose bool) string {
	var b strings.Builder

	b.WriteString("texlink resolution report\n")
	b.WriteString("=========================\n\n")

	fmt.Fprintf(&b, "Reference: %s (%s)\n", info.Path(), info.MapType)
	fmt.Fprintf(&b, "  prefix=%q alias=%q suffix=%q", info.Prefix, info.MatchedAlias, info.Suffix)
	if info.LODSuffix != "" {
		fmt.Fprintf(&b, " lod=%q", info.LODSuffix)
	}
	if info.UDIMToken != "" {
		fmt.Fprintf(&b, " tile=%q", info.UDIMToken)
	}
	fmt.Fprintf(&b, " ext=%q\n\n", info.Ext)

	fmt.Fprintf(&b, "Settings: udim=%v prefer_exr=%v\n\n", settings.UDIM, settings.PreferEXR)

	b.WriteString("Results\n")
	b.WriteString("-------\n")
	for _, t := range model.AllMapTypes {
		res := result[t]
		switch {
		case t == info.MapType:
			fmt.Fprintf(&b, "%s %-10s %s (reference)\n", model.IconFound, t, res.Path)
		case res.Found:
			fmt.Fprintf(&b, "%s %-10s %s\n", model.IconFound, t, res.Path)
		default:
			fmt.Fprintf(&b, "%s %-10s not found\n", model.IconMissing, t)
		}
	}

	if verbose && len(probes) > 0 {
		b.WriteString("\nCandidates probed\n")
		b.WriteString("-----------------\n")
		for _, p := range probes {
			mark := model.IconMissing
			if p.Hit {
				mark = model.IconFound
			}
			fmt.Fprintf(&b, "%s %-10s %s\n", mark, p.MapType, p.Path)
		}
	}

	return b.String()
}
