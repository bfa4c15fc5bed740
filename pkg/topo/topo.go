// Package topo defines the interconnect topology model: masters, slaves and
// routers, the named ports ("chimneys") through which connections may
// reference an endpoint, and the connections between them.
//
// The model is the canonical serialization format for configuration files
// (YAML) and API payloads (JSON), designed for round-trip fidelity: a config
// read, laid out and written back is unchanged. Layout treats the model as
// pre-validated input and degrades on inconsistencies; Validate reports them
// to the user instead.
package topo

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Kind classifies a topology node.
type Kind string

// Node kinds.
const (
	KindMaster Kind = "master"
	KindSlave  Kind = "slave"
	KindRouter Kind = "router"
)

// IsEndpoint reports whether the kind is a master or slave.
func (k Kind) IsEndpoint() bool { return k == KindMaster || k == KindSlave }

// Protocol describes a bus protocol endpoints may reference.
type Protocol struct {
	Type      string `json:"type,omitempty"`
	DataWidth int    `json:"data_width,omitempty"`
	AddrWidth int    `json:"addr_width,omitempty"`
	IDWidth   int    `json:"id_width,omitempty"`
}

// Node is one interconnect element. Ports and Protocol are only meaningful
// for endpoints; AddrRange ([start, end], hex strings with optional "_"
// separators) only for slaves.
type Node struct {
	ID        string   `json:"id" validate:"required"`
	Kind      Kind     `json:"kind" validate:"required,oneof=master slave router"`
	Ports     []string `json:"ports,omitempty"`
	Protocol  string   `json:"protocol,omitempty"`
	AddrRange []string `json:"addr_range,omitempty" validate:"omitempty,len=2"`
}

// Connection is an ordered pair of endpoint references, each either a node
// id or a port name. Type and Bidirectional are opaque styling passthrough.
type Connection struct {
	From          string `json:"from" validate:"required"`
	To            string `json:"to" validate:"required"`
	Type          string `json:"type,omitempty"`
	Bidirectional bool   `json:"bidirectional,omitempty"`
}

// Topology is a complete interconnect description.
type Topology struct {
	Name        string              `json:"name,omitempty"`
	Protocols   map[string]Protocol `json:"protocols,omitempty"`
	Nodes       []Node              `json:"nodes" validate:"dive"`
	Connections []Connection        `json:"connections,omitempty" validate:"dive"`
}

// Node returns the node with the given id, or false if absent.
func (t *Topology) Node(id string) (*Node, bool) {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return &t.Nodes[i], true
		}
	}
	return nil, false
}

// PortOwners maps every declared port name to its owning node id. When the
// same port name is declared twice (invalid, flagged by Validate) the first
// declaration wins, matching the layout engine's first-claim policy.
func (t *Topology) PortOwners() map[string]string {
	owners := make(map[string]string)
	for _, n := range t.Nodes {
		for _, p := range n.Ports {
			if _, taken := owners[p]; !taken {
				owners[p] = n.ID
			}
		}
	}
	return owners
}

// Unmarshal parses a YAML (or JSON) topology document.
func Unmarshal(data []byte) (Topology, error) {
	var t Topology
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return Topology{}, fmt.Errorf("parse topology: %w", err)
	}
	return t, nil
}

// Marshal serializes the topology as YAML.
func Marshal(t Topology) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal topology: %w", err)
	}
	return data, nil
}

// ReadFile reads and parses a topology config file.
func ReadFile(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// WriteFile writes the topology as a YAML file with 0644 permissions.
func WriteFile(t Topology, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
