// Package layout loads and serves static building layouts.
//
// A layout is the node set of one site. It can be written as explicit nodes,
// as room shapes that are converted to nodes, and as a junction grid stamped
// on every floor of every building. Layouts are read-only once loaded and are
// handed to the engine as-is on every request.
//
// This file defines the YAML document shape. JSON files are accepted too since
// JSON is a subset of YAML.
package layout

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sanonone/wayfinder/pkg/spatial"
	"gopkg.in/yaml.v3"
)

var ErrUnknownLayout = errors.New("unknown layout")

// File is the on-disk layout document.
type File struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Nodes       []spatial.Node `yaml:"nodes"`
	Rooms       []Room         `yaml:"rooms"`
	Junctions   *JunctionGrid  `yaml:"junctions"`
	Campus      *CampusSpec    `yaml:"campus"`
}

// Layout is a validated, immutable node set.
type Layout struct {
	Name        string
	Description string
	Nodes       spatial.Nodes

	rooms *roomIndex
}

// New validates nodes and builds the lookup indexes of a layout.
func New(name, description string, nodes spatial.Nodes) (*Layout, error) {
	if err := spatial.Validate(nodes); err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	return &Layout{
		Name:        name,
		Description: description,
		Nodes:       nodes,
		rooms:       newRoomIndex(nodes),
	}, nil
}

// Load reads a layout file. Environment variables in the file are expanded and
// unknown fields are rejected. An empty name in the file falls back to
// fallbackName.
func Load(path, fallbackName string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read layout file '%s': %w", path, err)
	}

	var f File
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	if f.Name == "" {
		f.Name = fallbackName
	}
	return f.Build()
}

// Build expands the document into a Layout. Explicit nodes come first, then
// rooms, then the campus generator, then the junction grid. Explicit nodes and
// rooms without a building are assigned DefaultBuilding.
func (f File) Build() (*Layout, error) {
	nodes := make(spatial.Nodes, 0, len(f.Nodes)+len(f.Rooms))
	for _, n := range f.Nodes {
		if n.Building == "" {
			n.Building = DefaultBuilding
		}
		nodes = append(nodes, n)
	}
	for _, r := range f.Rooms {
		nodes = append(nodes, r.Node())
	}
	if f.Campus != nil {
		nodes = append(nodes, GenerateCampus(*f.Campus)...)
	}
	if f.Junctions != nil {
		nodes = append(nodes, f.Junctions.Expand()...)
	}
	return New(f.Name, f.Description, nodes)
}
