// Package resolve locates sibling texture maps for a reference texture by
// substituting naming-convention aliases into the reference filename and
// probing the filesystem for the candidates.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"texlink/internal/model"
)

// ErrUnrecognizedBaseName means the reference filename contains no alias of
// its declared map type, so there is nothing to anchor substitution on.
var ErrUnrecognizedBaseName = errors.New("filename contains no known alias for its map type")

// defaultTile is probed when the reference carries a <UDIM> tag but the UDIM
// workflow is off.
const defaultTile = "1001"

// Grammar holds the lexical conventions for filename tokens. The exact LOD
// and tile grammars vary between asset pipelines, so they are configuration,
// not hard-coded literals.
type Grammar struct {
	LOD       *regexp.Regexp // Matches the LOD suffix at the end of a stem.
	UDIM      *regexp.Regexp // Matches the tile token at the end of a stem, capturing the tile.
	LODFormat string         // Printf format producing an LOD suffix from an index.
	LODDepth  int            // Highest LOD index probed during substitution.
	Exts      []string       // Extension preference order, leading dots included.
}

// DefaultGrammar matches the common Substance-style convention:
// Name_Map_LOD0.1001.png. The extension order keeps .exr first; Height
// demotes it to last when prefer_exr is off.
func DefaultGrammar() Grammar {
	return Grammar{
		LOD:       regexp.MustCompile(`_LOD\d+$`),
		UDIM:      regexp.MustCompile(`\.(\d{4}|<UDIM>)$`),
		LODFormat: "_LOD%d",
		LODDepth:  2,
		Exts:      []string{".exr", ".jpg", ".png", ".tif", ".tiff"},
	}
}

// FS is the filesystem surface the resolver probes. The default
// implementation hits the OS; tests substitute fixtures.
type FS interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
	// List returns the file names in dir, or nil when unreadable.
	List(dir string) []string
}

// Probe records one candidate test for diagnostic reports.
type Probe struct {
	MapType model.MapType `json:"map_type"`
	Path    string        `json:"path"`
	Hit     bool          `json:"hit"`
}

// Resolver computes sibling-map paths for one naming convention and settings
// snapshot. A resolve pass is stateless: no retries, no partial commit.
type Resolver struct {
	Convention model.Convention
	Settings   model.Settings
	Grammar    Grammar
	FS         FS
}

// New returns a Resolver with the default grammar probing the real
// filesystem.
func New(conv model.Convention, settings model.Settings) *Resolver {
	return &Resolver{
		Convention: conv,
		Settings:   settings,
		Grammar:    DefaultGrammar(),
		FS:         osFS{},
	}
}

// ParseReference decomposes a reference texture path around the alias of its
// declared map type. The longest matching alias wins so that e.g. "Color"
// never hijacks a "BaseColor" filename.
func ParseReference(path string, refType model.MapType, conv model.Convention, g Grammar) (model.TexturePathInfo, error) {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	var tile string
	if m := g.UDIM.FindStringSubmatch(stem); m != nil {
		tile = m[1]
		stem = strings.TrimSuffix(stem, m[0])
	}
	var lod string
	if m := g.LOD.FindString(stem); m != "" {
		lod = m
		stem = strings.TrimSuffix(stem, m)
	}

	alias, idx := findAnchor(stem, conv[refType])
	if idx < 0 {
		return model.TexturePathInfo{}, fmt.Errorf("%w: %q has no %s alias", ErrUnrecognizedBaseName, file, refType)
	}

	return model.TexturePathInfo{
		MapType:      refType,
		Dir:          dir,
		Prefix:       stem[:idx],
		MatchedAlias: stem[idx : idx+len(alias)],
		Suffix:       stem[idx+len(alias):],
		LODSuffix:    lod,
		UDIMToken:    tile,
		Ext:          ext,
	}, nil
}

// findAnchor returns the longest alias occurring in stem (case-insensitive)
// and its byte offset, or -1 when none matches. Earlier list entries win
// length ties.
func findAnchor(stem string, aliases []model.AliasRecord) (string, int) {
	lowered := strings.ToLower(stem)
	best, bestIdx := "", -1
	for _, rec := range aliases {
		i := strings.Index(lowered, strings.ToLower(rec.Name))
		if i < 0 {
			continue
		}
		if len(rec.Name) > len(best) {
			best, bestIdx = rec.Name, i
		}
	}
	return best, bestIdx
}

// ResolveReference parses the reference path and resolves every other map
// type against it.
func (r *Resolver) ResolveReference(path string, refType model.MapType) (model.TexturePathInfo, model.LinkResult, []Probe, error) {
	info, err := ParseReference(path, refType, r.Convention, r.Grammar)
	if err != nil {
		return model.TexturePathInfo{}, nil, nil, err
	}
	result, probes := r.Resolve(info)
	return info, result, probes, nil
}

// Resolve computes the most plausible existing path for every map type other
// than the reference's own. The reference itself is reported as found at its
// original path. Map types with no existing candidate are reported as not
// found; that is a partial result, never an error.
func (r *Resolver) Resolve(info model.TexturePathInfo) (model.LinkResult, []Probe) {
	result := make(model.LinkResult, len(model.AllMapTypes))
	result[info.MapType] = model.Resolution{Found: true, Path: info.Path()}

	var probes []Probe
	for _, t := range model.AllMapTypes {
		if t == info.MapType {
			continue
		}
		result[t] = r.resolveOne(info, t, &probes)
	}
	return result, probes
}

// resolveOne walks alias order x LOD order x extension order and returns the
// first candidate that exists. Alias order is the user's priority; the bare
// stem is probed before LOD variants and LOD0 before higher indices.
func (r *Resolver) resolveOne(info model.TexturePathInfo, target model.MapType, probes *[]Probe) model.Resolution {
	exts := r.extOrder(target)
	for _, alias := range r.Convention[target] {
		for _, lod := range r.lodCandidates() {
			stem := info.Prefix + alias.Name + info.Suffix + lod
			for _, ext := range exts {
				if path, ok := r.probe(info.Dir, stem, info.UDIMToken, ext, target, probes); ok {
					return model.Resolution{Found: true, Path: path}
				}
			}
		}
	}
	return model.Resolution{}
}

func (r *Resolver) lodCandidates() []string {
	lods := []string{""}
	for i := 0; i <= r.Grammar.LODDepth; i++ {
		lods = append(lods, fmt.Sprintf(r.Grammar.LODFormat, i))
	}
	return lods
}

// extOrder returns the extension preference for a target map type. prefer_exr
// applies to the Height channel only: when it is off, .exr drops to the end
// of the list.
func (r *Resolver) extOrder(target model.MapType) []string {
	exts := append([]string(nil), r.Grammar.Exts...)
	if target != model.Height || r.Settings.PreferEXR {
		return exts
	}
	out := exts[:0]
	demoted := false
	for _, e := range exts {
		if e == ".exr" {
			demoted = true
			continue
		}
		out = append(out, e)
	}
	if demoted {
		out = append(out, ".exr")
	}
	return out
}

// probe tests one candidate stem+extension. With the UDIM workflow on and a
// tile token present, the tile is a wildcard: any tile of the candidate in
// the directory counts, and the lowest tile found is reported.
func (r *Resolver) probe(dir, stem, tile, ext string, target model.MapType, probes *[]Probe) (string, bool) {
	if r.Settings.UDIM && tile != "" {
		hit, ok := r.probeTiles(dir, stem, ext)
		*probes = append(*probes, Probe{MapType: target, Path: filepath.Join(dir, stem+".<UDIM>"+ext), Hit: ok})
		return hit, ok
	}

	name := stem
	if tile != "" {
		if tile == "<UDIM>" {
			tile = defaultTile
		}
		name += "." + tile
	}
	path := filepath.Join(dir, name+ext)
	ok := r.FS.Exists(path)
	*probes = append(*probes, Probe{MapType: target, Path: path, Hit: ok})
	return path, ok
}

func (r *Resolver) probeTiles(dir, stem, ext string) (string, bool) {
	listDir := dir
	if listDir == "" {
		listDir = "."
	}
	prefix := stem + "."
	best := ""
	for _, name := range r.FS.List(listDir) {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		mid := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
		if !isTile(mid) {
			continue
		}
		if best == "" || name < best {
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	return filepath.Join(dir, best), true
}

func isTile(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
