package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingyamilmolinar/nodeflow/core/autolayout"
	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/model"
	"github.com/ingyamilmolinar/nodeflow/core/topology"
	"github.com/ingyamilmolinar/nodeflow/core/view"
)

var errCheckFailed = errors.New("check failed")

/* ───────────────────────── layout ───────────────────────── */

func newLayoutCommand(a *app) *cobra.Command {
	var (
		root    string
		layered bool
		write   bool
		originX float64
		originY float64
	)
	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Assign node positions automatically",
		Long: `Lays out every node of FILE and prints the new positions.

By default each sink becomes the root of a tree that grows to the left
through incoming wires. --root lays out only what feeds a single node;
--layered places nodes in columns by longest path from the sources.
Locked nodes keep their position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			l := a.cfg.Layout
			at := geom.Pt(originX, originY)
			switch {
			case root != "":
				i, err := nodeRef(p, root)
				if err != nil {
					return err
				}
				res := autolayout.Recursive(p, i, at, l)
				a.logger.Infof("[LAYOUT] placed %d node(s) from %q, height %g", len(res.Placed), p.Nodes[i].Name, res.Height)
			case layered:
				if _, err := autolayout.Columns(p); err != nil {
					a.logger.Warnf("[LAYOUT] %v; falling back to tree layout", err)
				}
				autolayout.Layered(p, at, l)
			default:
				res := autolayout.All(p, at, l)
				a.logger.Infof("[LAYOUT] placed %d node(s), height %g", len(res.Placed), res.Height)
			}

			w := cmd.OutOrStdout()
			title.Fprintln(w, "positions")
			printPositions(w, p)
			subtle.Fprintf(w, "bounds %v\n", p.Bounds(l))
			if write {
				if err := writePatch(args[0], p); err != nil {
					return err
				}
				good.Fprintf(w, "wrote %s\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "lay out only the nodes feeding this node (name or index)")
	cmd.Flags().BoolVar(&layered, "layered", false, "arrange nodes in columns by depth")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write positions back to FILE")
	cmd.Flags().Float64Var(&originX, "x", 0, "x of the layout origin")
	cmd.Flags().Float64Var(&originY, "y", 0, "y of the layout origin")
	return cmd
}

func printPositions(w io.Writer, p *model.Patch) {
	width := 0
	for _, n := range p.Nodes {
		width = max(width, len(n.Name))
	}
	for i, n := range p.Nodes {
		lock := ""
		if n.Locked {
			lock = subtle.Sprint(" locked")
		}
		fmt.Fprintf(w, "  %3d  %-*s  %s%s\n", i, width, n.Name, pointString(n.Position), lock)
	}
}

/* ───────────────────────── hit ───────────────────────── */

func newHitCommand(a *app) *cobra.Command {
	var zoom, panX, panY float64
	cmd := &cobra.Command{
		Use:   "hit FILE X Y",
		Short: "Report what lies under a screen point",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			if !cmd.Flags().Changed("zoom") {
				zoom = a.cfg.View.InitialZoom
			}
			t := view.New(
				view.WithZoomLimits(a.cfg.View.MinZoom, a.cfg.View.MaxZoom),
				view.WithZoom(zoom),
				view.WithPan(geom.Size{W: panX, H: panY}),
			)
			if t.Zoom != zoom {
				a.logger.Warnf("[HIT] zoom %g clamped to %g", zoom, t.Zoom)
			}

			at := t.ScreenToGraph(geom.Pt(x, y))
			hit := p.HitTest(at, a.cfg.Layout)
			a.logger.Debugf("[HIT] screen (%g, %g) -> graph %v -> %v", x, y, at, hit)

			w := cmd.OutOrStdout()
			subtle.Fprintf(w, "graph %s\n", pointString(at))
			fmt.Fprintln(w, describeHit(p, hit))
			return nil
		},
	}
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "view zoom")
	cmd.Flags().Float64Var(&panX, "pan-x", 0, "view pan x, in graph units")
	cmd.Flags().Float64Var(&panY, "pan-y", 0, "view pan y, in graph units")
	return cmd
}

func describeHit(p *model.Patch, h model.HitResult) string {
	switch h.Kind {
	case model.HitNode:
		return fmt.Sprintf("node %s [%d]", p.Nodes[h.Node].Name, h.Node)
	case model.HitInput:
		n := p.Nodes[h.Node]
		return fmt.Sprintf("input %s.%s [%d,%d]", n.Name, n.Inputs[h.Port].Name, h.Node, h.Port)
	case model.HitOutput:
		n := p.Nodes[h.Node]
		return fmt.Sprintf("output %s.%s [%d,%d]", n.Name, n.Outputs[h.Port].Name, h.Node, h.Port)
	default:
		return "background"
	}
}

/* ───────────────────────── check ───────────────────────── */

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Report cycles, unwired inputs and overlapping nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			failed := false
			if err := p.Validate(); err != nil {
				bad.Fprintf(w, "invalid: %v\n", err)
				failed = true
			}
			for _, c := range topology.Cycles(p) {
				if a.cfg.Editor.AllowCycles {
					warn.Fprintf(w, "cycle: %s\n", cycleString(p, c))
					continue
				}
				bad.Fprintf(w, "cycle: %s\n", cycleString(p, c))
				failed = true
			}
			for i, n := range p.Nodes {
				for j, in := range n.Inputs {
					if len(p.WiresTo(model.InputID{Node: i, Port: j})) == 0 {
						warn.Fprintf(w, "unwired input: %s.%s\n", n.Name, in.Name)
					}
				}
			}
			l := a.cfg.Layout
			for i := range p.Nodes {
				for j := i + 1; j < len(p.Nodes); j++ {
					if p.Nodes[i].Rect(l).Intersects(p.Nodes[j].Rect(l)) {
						warn.Fprintf(w, "overlap: %s and %s\n", p.Nodes[i].Name, p.Nodes[j].Name)
					}
				}
			}
			if failed {
				return errCheckFailed
			}
			good.Fprintf(w, "ok: %d nodes, %d wires\n", len(p.Nodes), p.Wires.Len())
			return nil
		},
	}
}

func cycleString(p *model.Patch, c []model.NodeIndex) string {
	names := make([]string, 0, len(c)+1)
	for _, i := range c {
		names = append(names, p.Nodes[i].Name)
	}
	names = append(names, p.Nodes[c[0]].Name)
	return strings.Join(names, " -> ")
}

/* ───────────────────────── dot ───────────────────────── */

func newDotCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Export the patch as a Graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			out, err := marshalDOT(p, name)
			if err != nil {
				return err
			}
			a.logger.Debugf("[DOT] %d bytes", len(out))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "patch", "graph name")
	return cmd
}
