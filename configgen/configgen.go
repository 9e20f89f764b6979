// Package configgen writes the configuration artifact that seeds a tax run:
// pass-through header sections plus the observed universe.
package configgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/transaction"
	"github.com/rustyeddy/dali/universe"
	"gopkg.in/yaml.v3"
)

// Headers are the per-direction header sections copied verbatim from the
// global configuration.
type Headers struct {
	In    map[string]any `json:"in_header" yaml:"in_header"`
	Out   map[string]any `json:"out_header" yaml:"out_header"`
	Intra map[string]any `json:"intra_header" yaml:"intra_header"`
}

// Artifact is the persisted document.
type Artifact struct {
	InHeader    map[string]any `json:"in_header" yaml:"in_header"`
	OutHeader   map[string]any `json:"out_header" yaml:"out_header"`
	IntraHeader map[string]any `json:"intra_header" yaml:"intra_header"`
	Assets      []string       `json:"assets" yaml:"assets"`
	Exchanges   []string       `json:"exchanges" yaml:"exchanges"`
	Holders     []string       `json:"holders" yaml:"holders"`
}

// Output locates the artifact: Dir/(Prefix+Name).
type Output struct {
	Dir    string
	Prefix string
	Name   string
}

func (o Output) Path() string {
	return filepath.Join(o.Dir, o.Prefix+o.Name)
}

// Build merges headers with the universe of txs.
func Build(txs []transaction.Transaction, h Headers, isFiat fiat.Predicate) (*Artifact, error) {
	u, err := universe.Aggregate(txs, isFiat)
	if err != nil {
		return nil, err
	}
	return FromUniverse(u, h), nil
}

// FromUniverse merges headers with an already aggregated universe.
func FromUniverse(u universe.Universe, h Headers) *Artifact {
	return &Artifact{
		InHeader:    section(h.In),
		OutHeader:   section(h.Out),
		IntraHeader: section(h.Intra),
		Assets:      u.AssetList(),
		Exchanges:   u.ExchangeList(),
		Holders:     u.HolderList(),
	}
}

// Generate builds the artifact and writes it to out, replacing any artifact
// already there. It returns the written path.
func Generate(out Output, txs []transaction.Transaction, h Headers, isFiat fiat.Predicate) (string, error) {
	a, err := Build(txs, h, isFiat)
	if err != nil {
		return "", err
	}
	return Write(out, a)
}

var errMissingName = errors.New("configgen: missing output file name")

// Write stores a at out, replacing any artifact already there, and returns
// the written path.
func Write(out Output, a *Artifact) (string, error) {
	if out.Name == "" {
		return "", errMissingName
	}
	path := out.Path()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove previous artifact: %w", err)
	}
	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := a.SaveToFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (a *Artifact) SaveToFile(path string) error {
	var data []byte
	var err error

	if isYAML(path) {
		data, err = yaml.Marshal(a)
	} else {
		data, err = json.MarshalIndent(a, "", "    ")
	}
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadFromFile reads an artifact written by SaveToFile.
func LoadFromFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	a := &Artifact{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, a)
	} else {
		err = json.Unmarshal(data, a)
	}
	if err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return a, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// section keeps an absent header as an empty object rather than null.
func section(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
