package topo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the topology and returns user-facing error messages, or
// nil when the config is well formed. Structural problems (missing ids,
// unknown kinds) short-circuit the semantic checks, mirroring the schema →
// semantics split of the original validator.
//
// Validation never gates layout: the layout engine accepts invalid configs
// and degrades, while these messages are surfaced to the user.
func (t *Topology) Validate() []string {
	if errs := t.structuralErrors(); len(errs) > 0 {
		return errs
	}
	if errs := t.semanticErrors(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (t *Topology) structuralErrors() []string {
	err := structValidator.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	errs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Sprintf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
	}
	return errs
}

func (t *Topology) semanticErrors() []string {
	var errs []string

	nodeIDs := make(map[string]bool, len(t.Nodes))
	portNames := make(map[string]bool)
	for _, n := range t.Nodes {
		if nodeIDs[n.ID] {
			errs = append(errs, fmt.Sprintf("Duplicate node id: %q", n.ID))
		}
		nodeIDs[n.ID] = true

		if n.Kind == KindRouter && len(n.Ports) > 0 {
			errs = append(errs, fmt.Sprintf("Router %q must not declare ports", n.ID))
		}
		for _, p := range n.Ports {
			if portNames[p] {
				errs = append(errs, fmt.Sprintf("Duplicate port name: %q", p))
			}
			portNames[p] = true
		}

		if n.Protocol != "" {
			if _, ok := t.Protocols[n.Protocol]; !ok {
				errs = append(errs, fmt.Sprintf("Endpoint %q references undefined protocol %q", n.ID, n.Protocol))
			}
		}
		if n.Kind == KindSlave && len(n.AddrRange) == 0 {
			errs = append(errs, fmt.Sprintf("Slave endpoint %q must have an address range", n.ID))
		}
	}

	for _, c := range t.Connections {
		if !nodeIDs[c.From] && !portNames[c.From] {
			errs = append(errs, fmt.Sprintf("Connection references undefined 'from' node: %q", c.From))
		}
		if !nodeIDs[c.To] && !portNames[c.To] {
			errs = append(errs, fmt.Sprintf("Connection references undefined 'to' node: %q", c.To))
		}
	}

	errs = append(errs, t.addrOverlapErrors()...)
	return errs
}

// addrOverlapErrors flags slaves whose address ranges overlap. Ranges are
// inclusive [start, end] pairs; unparseable or incomplete ranges are skipped
// here because the structural checks already reported them.
func (t *Topology) addrOverlapErrors() []string {
	type slaveRange struct {
		id         string
		start, end uint64
	}
	var slaves []slaveRange
	for _, n := range t.Nodes {
		if n.Kind != KindSlave || len(n.AddrRange) != 2 {
			continue
		}
		start, err1 := parseAddr(n.AddrRange[0])
		end, err2 := parseAddr(n.AddrRange[1])
		if err1 != nil || err2 != nil {
			continue
		}
		slaves = append(slaves, slaveRange{id: n.ID, start: start, end: end})
	}

	var errs []string
	for i, a := range slaves {
		for _, b := range slaves[i+1:] {
			if a.end < b.start || b.end < a.start {
				continue
			}
			errs = append(errs, fmt.Sprintf("Address range overlap between %q and %q", a.id, b.id))
		}
	}
	return errs
}

// parseAddr accepts decimal or prefixed (0x...) addresses, tolerating "_"
// digit separators as used in hardware configs.
func parseAddr(s string) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 64)
}
