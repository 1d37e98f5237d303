// Package layout maps port counts to node and port rectangles. It is the one
// place sizing is computed: renderers and hit tests both go through Layout,
// so what is drawn and what is clickable can never drift apart.
package layout

import (
	"errors"
	"fmt"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
)

// ErrInvalidConstants is wrapped by Validate for every rejected field.
var ErrInvalidConstants = errors.New("layout: invalid constants")

// Layout is the geometry contract consumed by the model and hit tests.
// Rects returned by InputRect/OutputRect are relative to the node origin.
type Layout interface {
	RectSize(portCount int) geom.Size
	InputRect(input int) geom.Rect
	OutputRect(output int) geom.Rect
}

// Constants is the default Layout: a fixed style sheet of spacings and sizes.
type Constants struct {
	PortSize        geom.Size `toml:"port_size" yaml:"port_size"`
	PortSpacing     float64   `toml:"port_spacing" yaml:"port_spacing"`
	PortInset       float64   `toml:"port_inset" yaml:"port_inset"`
	NodeWidth       float64   `toml:"node_width" yaml:"node_width"`
	NodeTitleHeight float64   `toml:"node_title_height" yaml:"node_title_height"`
	NodeSpacing     float64   `toml:"node_spacing" yaml:"node_spacing"`   // gap used by automatic layout
	CornerRadius    float64   `toml:"corner_radius" yaml:"corner_radius"` // render hint only
}

// Default returns the stock style.
func Default() Constants {
	return Constants{
		PortSize:        geom.Sz(20, 20),
		PortSpacing:     10,
		PortInset:       10,
		NodeWidth:       200,
		NodeTitleHeight: 40,
		NodeSpacing:     40,
		CornerRadius:    5,
	}
}

func (c Constants) rowHeight() float64 { return c.PortSize.H + c.PortSpacing }

// RectSize is the size of a node showing portCount rows of ports.
func (c Constants) RectSize(portCount int) geom.Size {
	if portCount < 0 {
		portCount = 0
	}
	return geom.Size{
		W: c.NodeWidth,
		H: float64(portCount)*c.rowHeight() + c.NodeTitleHeight + c.PortSpacing,
	}
}

func (c Constants) portY(i int) float64 {
	return c.NodeTitleHeight + float64(i)*c.rowHeight() + c.PortSpacing
}

// InputRect is the hit rect of the i-th input, along the node's left edge.
func (c Constants) InputRect(input int) geom.Rect {
	return geom.RectAt(geom.Pt(c.PortInset, c.portY(input)), c.PortSize)
}

// OutputRect is the hit rect of the i-th output, along the node's right edge.
func (c Constants) OutputRect(output int) geom.Rect {
	x := c.NodeWidth - c.PortInset - c.PortSize.W
	return geom.RectAt(geom.Pt(x, c.portY(output)), c.PortSize)
}

// Validate rejects style sheets that would make ports unclickable.
func (c Constants) Validate() error {
	switch {
	case c.PortSize.W <= 0 || c.PortSize.H <= 0:
		return fmt.Errorf("%w: port_size %vx%v must be positive", ErrInvalidConstants, c.PortSize.W, c.PortSize.H)
	case c.NodeWidth <= 0:
		return fmt.Errorf("%w: node_width %v must be positive", ErrInvalidConstants, c.NodeWidth)
	case c.PortSpacing < 0:
		return fmt.Errorf("%w: port_spacing %v is negative", ErrInvalidConstants, c.PortSpacing)
	case c.PortInset < 0:
		return fmt.Errorf("%w: port_inset %v is negative", ErrInvalidConstants, c.PortInset)
	case c.NodeTitleHeight < 0:
		return fmt.Errorf("%w: node_title_height %v is negative", ErrInvalidConstants, c.NodeTitleHeight)
	case c.NodeSpacing < 0:
		return fmt.Errorf("%w: node_spacing %v is negative", ErrInvalidConstants, c.NodeSpacing)
	}
	if c.InputRect(0).Intersects(c.OutputRect(0)) {
		return fmt.Errorf("%w: node_width %v too narrow for two port columns", ErrInvalidConstants, c.NodeWidth)
	}
	return nil
}
