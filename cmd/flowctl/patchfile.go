package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/model"
)

var ErrPatchFile = errors.New("patch file")

// patchFile is the on-disk form of a patch. Nodes and ports are referred to
// by name so files stay readable when nodes are reordered.
//
//	nodes:
//	  - {name: osc, at: [0, 0], outputs: [out]}
//	  - {name: fx, at: [240, 0], inputs: [in], outputs: [out]}
//	wires:
//	  - {from: osc.out, to: fx.in}
type patchFile struct {
	Nodes []nodeSpec `yaml:"nodes"`
	Wires []wireSpec `yaml:"wires,omitempty"`
}

type nodeSpec struct {
	Name    string    `yaml:"name"`
	At      []float64 `yaml:"at,flow,omitempty"`
	Inputs  []string  `yaml:"inputs,flow,omitempty"`
	Outputs []string  `yaml:"outputs,flow,omitempty"`
	Locked  bool      `yaml:"locked,omitempty"`
}

type wireSpec struct {
	From string `yaml:"from"` // node.output
	To   string `yaml:"to"`   // node.input
}

func readPatch(path string) (*model.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := decodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func writePatch(path string, p *model.Patch) error {
	data, err := encodePatch(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func decodePatch(data []byte) (*model.Patch, error) {
	var f patchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatchFile, err)
	}

	byName := make(map[string]model.NodeIndex, len(f.Nodes))
	nodes := make([]model.Node, 0, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", ErrPatchFile, i)
		}
		if _, dup := byName[n.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrPatchFile, n.Name)
		}
		var opts []model.NodeOption
		switch len(n.At) {
		case 0:
		case 2:
			opts = append(opts, model.At(n.At[0], n.At[1]))
		default:
			return nil, fmt.Errorf("%w: node %q: at wants [x, y]", ErrPatchFile, n.Name)
		}
		if n.Locked {
			opts = append(opts, model.Locked())
		}
		byName[n.Name] = i
		nodes = append(nodes, model.NewNode(n.Name, n.Inputs, n.Outputs, opts...))
	}

	p := model.New(nodes)
	for _, w := range f.Wires {
		from, ofrom, err := endpoint(nodes, byName, w.From, func(n model.Node) []model.Port { return n.Outputs })
		if err != nil {
			return nil, err
		}
		to, oto, err := endpoint(nodes, byName, w.To, func(n model.Node) []model.Port { return n.Inputs })
		if err != nil {
			return nil, err
		}
		p.Connect(model.NewWire(model.OutputID{Node: from, Port: ofrom}, model.InputID{Node: to, Port: oto}))
	}
	return p, nil
}

func endpoint(nodes []model.Node, byName map[string]model.NodeIndex, ref string, ports func(model.Node) []model.Port) (model.NodeIndex, model.PortIndex, error) {
	dot := strings.LastIndexByte(ref, '.')
	if dot <= 0 || dot == len(ref)-1 {
		return 0, 0, fmt.Errorf("%w: endpoint %q wants node.port", ErrPatchFile, ref)
	}
	node, port := ref[:dot], ref[dot+1:]
	i, ok := byName[node]
	if !ok {
		return 0, 0, fmt.Errorf("%w: endpoint %q: unknown node %q", ErrPatchFile, ref, node)
	}
	for j, pt := range ports(nodes[i]) {
		if pt.Name == port {
			return i, j, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: endpoint %q: node %q has no port %q", ErrPatchFile, ref, node, port)
}

func encodePatch(p *model.Patch) ([]byte, error) {
	f := patchFile{Nodes: make([]nodeSpec, 0, len(p.Nodes))}
	for _, n := range p.Nodes {
		f.Nodes = append(f.Nodes, nodeSpec{
			Name:    n.Name,
			At:      []float64{n.Position.X, n.Position.Y},
			Inputs:  portNames(n.Inputs),
			Outputs: portNames(n.Outputs),
			Locked:  n.Locked,
		})
	}
	for _, w := range p.Wires.Sorted() {
		if p.CheckWire(w) != nil {
			continue
		}
		out, in := p.Nodes[w.Output.Node], p.Nodes[w.Input.Node]
		f.Wires = append(f.Wires, wireSpec{
			From: out.Name + "." + out.Outputs[w.Output.Port].Name,
			To:   in.Name + "." + in.Inputs[w.Input.Port].Name,
		})
	}
	return yaml.Marshal(&f)
}

func portNames(ports []model.Port) []string {
	if len(ports) == 0 {
		return nil
	}
	out := make([]string, len(ports))
	for i, p := range ports {
		out[i] = p.Name
	}
	return out
}

// nodeRef resolves a node given by name or by index.
func nodeRef(p *model.Patch, ref string) (model.NodeIndex, error) {
	for i, n := range p.Nodes {
		if n.Name == ref {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(p.Nodes) {
		return i, nil
	}
	return 0, fmt.Errorf("no node %q", ref)
}

func pointString(pt geom.Point) string { return fmt.Sprintf("(%g, %g)", pt.X, pt.Y) }
