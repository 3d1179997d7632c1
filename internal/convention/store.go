// Package convention loads, mutates, and saves the naming-convention file
// that drives texture-map resolution. The file is JSON by default; a .yaml
// or .yml extension switches the codec. Unknown top-level keys are ignored
// so older binaries keep reading newer files.
package convention

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"texlink/internal/model"
)

// Error taxonomy for store operations. Callers discriminate with errors.Is.
var (
	ErrFileNotFound   = errors.New("convention file not found")
	ErrParse          = errors.New("convention file is not valid")
	ErrSchema         = errors.New("convention file does not match the expected shape")
	ErrWrite          = errors.New("convention file could not be written")
	ErrDuplicateAlias = errors.New("alias already exists")
	ErrLockedAlias    = errors.New("alias is locked and cannot be deleted")
)

// document is the on-disk shape: one key per map type plus the two flags.
// All six map-type keys are always written so the file round-trips exactly.
type document struct {
	BaseColor []model.AliasRecord `json:"BaseColor" yaml:"BaseColor"`
	Roughness []model.AliasRecord `json:"Roughness" yaml:"Roughness"`
	Normal    []model.AliasRecord `json:"Normal" yaml:"Normal"`
	Metallic  []model.AliasRecord `json:"Metallic" yaml:"Metallic"`
	Height    []model.AliasRecord `json:"Height" yaml:"Height"`
	Opacity   []model.AliasRecord `json:"Opacity" yaml:"Opacity"`
	UDIM      bool                `json:"udim" yaml:"udim"`
	PreferEXR bool                `json:"prefer_exr" yaml:"prefer_exr"`
}

func (d *document) lists() map[model.MapType]*[]model.AliasRecord {
	return map[model.MapType]*[]model.AliasRecord{
		model.BaseColor: &d.BaseColor,
		model.Roughness: &d.Roughness,
		model.Normal:    &d.Normal,
		model.Metallic:  &d.Metallic,
		model.Height:    &d.Height,
		model.Opacity:   &d.Opacity,
	}
}

// Default returns the shipped convention: one locked canonical alias per map
// type, plus the common BaseColor synonyms the linker has always accepted.
func Default() model.Convention {
	return model.Convention{
		model.BaseColor: {
			{Name: "BaseColor", Locked: true},
			{Name: "Albedo", Locked: true},
			{Name: "Diffuse", Locked: true},
		},
		model.Roughness: {{Name: "Roughness", Locked: true}},
		model.Normal:    {{Name: "Normal", Locked: true}},
		model.Metallic:  {{Name: "Metallic", Locked: true}},
		model.Height: {
			{Name: "Height", Locked: true},
			{Name: "Displacement", Locked: true},
		},
		model.Opacity: {{Name: "Opacity", Locked: true}},
	}
}

// DefaultSettings returns the initial flag values.
func DefaultSettings() model.Settings {
	return model.Settings{}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads the convention file at path. Map types absent from the file get
// an empty alias list; an absent BaseColor list gets the locked defaults so
// resolution always has an anchor type.
func Load(path string) (model.Convention, model.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.Settings{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, model.Settings{}, err
	}

	// First decode generically: schema validation and key-presence detection
	// both need the raw document.
	var raw map[string]interface{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := validate(raw); err != nil {
		return nil, model.Settings{}, err
	}

	var doc document
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, model.Settings{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	conv := make(model.Convention, len(model.AllMapTypes))
	for t, list := range doc.lists() {
		if _, present := raw[string(t)]; present {
			conv[t] = *list
		}
	}
	if conv[model.BaseColor] == nil {
		conv[model.BaseColor] = Default()[model.BaseColor]
	}
	for _, t := range model.AllMapTypes {
		if conv[t] == nil {
			conv[t] = []model.AliasRecord{}
		}
	}

	return conv, model.Settings{UDIM: doc.UDIM, PreferEXR: doc.PreferEXR}, nil
}

// Save writes the convention and settings back to path atomically: the
// document is written to a temp file in the same directory and renamed over
// the target, so a failed write never leaves a half-written file behind.
func Save(path string, conv model.Convention, settings model.Settings) error {
	doc := document{UDIM: settings.UDIM, PreferEXR: settings.PreferEXR}
	for t, list := range doc.lists() {
		recs := conv[t]
		if recs == nil {
			recs = []model.AliasRecord{}
		}
		*list = recs
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(&doc)
	} else {
		data, err = json.MarshalIndent(&doc, "", "    ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".texlink-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// AddAlias appends an unlocked alias to the map type's list. Duplicate names
// (compared case-insensitively) are rejected with ErrDuplicateAlias.
func AddAlias(conv model.Convention, t model.MapType, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("alias name must not be empty")
	}
	for _, rec := range conv[t] {
		if strings.EqualFold(rec.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateAlias, rec.Name)
		}
	}
	conv[t] = append(conv[t], model.AliasRecord{Name: name})
	return nil
}

// AddAliases adds several names at once (the Name Manager accepts a
// comma-separated list). The whole batch is rejected if any name is already
// present, so a partial add never reaches the file.
func AddAliases(conv model.Convention, t model.MapType, names []string) error {
	cleaned := make([]string, 0, len(names))
	var dups []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		for _, rec := range conv[t] {
			if strings.EqualFold(rec.Name, n) {
				dups = append(dups, n)
			}
		}
		for _, prev := range cleaned {
			if strings.EqualFold(prev, n) {
				dups = append(dups, n)
			}
		}
		cleaned = append(cleaned, n)
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateAlias, strings.Join(dups, ", "))
	}
	if len(cleaned) == 0 {
		return errors.New("alias name must not be empty")
	}
	for _, n := range cleaned {
		conv[t] = append(conv[t], model.AliasRecord{Name: n})
	}
	return nil
}

// DeleteAlias removes the named alias from the map type's list. Locked
// records fail with ErrLockedAlias and the convention is left unchanged.
// Deleting an absent name is a no-op.
func DeleteAlias(conv model.Convention, t model.MapType, name string) error {
	for i, rec := range conv[t] {
		if rec.Name != name {
			continue
		}
		if rec.Locked {
			return fmt.Errorf("%w: %s", ErrLockedAlias, name)
		}
		conv[t] = append(conv[t][:i], conv[t][i+1:]...)
		return nil
	}
	return nil
}

// SetFlag toggles one of the two persisted settings by its file key.
func SetFlag(s *model.Settings, flag string, value bool) error {
	switch flag {
	case "udim":
		s.UDIM = value
	case "prefer_exr":
		s.PreferEXR = value
	default:
		return fmt.Errorf("unknown flag %q", flag)
	}
	return nil
}
