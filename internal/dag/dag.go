// SPDX-License-Identifier: MPL-2.0

// Package dag orders named nodes by their dependencies and reports cycles.
// The validator uses it to check a whole registry for requirement cycles
// without resolving any particular build.
package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrCycle is the sentinel wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle lists the nodes of one cycle in dependency order; the first
		// node is repeated at the end.
		Cycle []string
	}

	// Graph is a directed dependency graph over string keys.
	// An edge from A to B means A must be ordered before B.
	Graph struct {
		// dependents maps each node to the nodes that depend on it.
		dependents map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle for errors.Is() compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependents: make(map[string][]string),
		nodeSet:    make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddDependency records that node depends on dependsOn, so dependsOn is
// ordered first. Both nodes are added if missing; repeated edges are ignored.
func (g *Graph) AddDependency(node, dependsOn string) {
	g.AddNode(node)
	g.AddNode(dependsOn)
	if slices.Contains(g.dependents[dependsOn], node) {
		return
	}
	g.dependents[dependsOn] = append(g.dependents[dependsOn], node)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// TopologicalSort returns an order in which every node follows its
// dependencies, using Kahn's algorithm. Nodes that become ready together
// keep insertion order. Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		for _, dependent := range g.dependents[node] {
			inDegree[dependent]++
		}
	}

	var queue []string
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range g.dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, &CycleError{Cycle: g.findCycle(inDegree)}
	}

	return result, nil
}

// findCycle walks the nodes Kahn's algorithm could not release and returns
// one concrete cycle among them. Every such node has a blocked predecessor,
// so walking predecessors must eventually revisit a node.
func (g *Graph) findCycle(inDegree map[string]int) []string {
	blockedDeps := make(map[string][]string)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			continue
		}
		for _, dependent := range g.dependents[node] {
			if inDegree[dependent] > 0 {
				blockedDeps[dependent] = append(blockedDeps[dependent], node)
			}
		}
	}

	var start string
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			start = node
			break
		}
	}

	var walk []string
	seen := make(map[string]int)
	node := start
	for {
		if idx, ok := seen[node]; ok {
			cycle := slices.Clone(walk[idx:])
			slices.Reverse(cycle)
			// walk follows dependencies backwards; reversed it reads
			// dependency-first, closed by repeating the first node.
			return append(cycle, cycle[0])
		}
		seen[node] = len(walk)
		walk = append(walk, node)
		node = blockedDeps[node][0]
	}
}
