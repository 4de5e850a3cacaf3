// Package categorytree turns the flat list of budget categories into a
// navigable forest and enforces the structural rules of the hierarchy.
//
// The flat list is authoritative. Trees are derived on every read and never
// persisted.
package categorytree

import (
	"sort"

	"posfinance/internal/models"
)

// Node is a category together with its ordered children.
type Node struct {
	Category models.Category `json:"category"`
	Depth    int             `json:"depth"`
	Children []*Node         `json:"children"`
}

// FlatNode is one row of a depth-first rendering of the forest.
type FlatNode struct {
	Category models.Category `json:"category"`
	Depth    int             `json:"depth"`
}

// Build groups categories by parent and returns the roots of the forest.
//
// A category whose parent is nil, or refers to a category not present in the
// input, is a root. Siblings are ordered by name, then id. Input is expected to
// be acyclic; categories caught in a cycle that no root reaches are attached
// as extra roots so every category still appears exactly once.
func Build(categories []models.Category) []*Node {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	children := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if _, ok := byID[*c.ParentID]; !ok {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[string]bool, len(categories))
	forest := attach(sortCategories(roots), children, visited, 0)

	if len(visited) < len(byID) {
		var stranded []models.Category
		for _, c := range categories {
			if !visited[c.ID] {
				stranded = append(stranded, c)
			}
		}
		for _, c := range sortCategories(stranded) {
			if visited[c.ID] {
				continue
			}
			forest = append(forest, attach([]models.Category{c}, children, visited, 0)...)
		}
	}

	return forest
}

func attach(level []models.Category, children map[string][]models.Category, visited map[string]bool, depth int) []*Node {
	nodes := make([]*Node, 0, len(level))
	for _, c := range level {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		node := &Node{Category: c, Depth: depth}
		node.Children = attach(sortCategories(children[c.ID]), children, visited, depth+1)
		nodes = append(nodes, node)
	}
	return nodes
}

func sortCategories(cs []models.Category) []models.Category {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Name != cs[j].Name {
			return cs[i].Name < cs[j].Name
		}
		return cs[i].ID < cs[j].ID
	})
	return cs
}

// Flatten walks the forest depth-first, parents before their children.
func Flatten(forest []*Node) []FlatNode {
	var out []FlatNode
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, FlatNode{Category: n.Category, Depth: n.Depth})
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	n := 0
	for _, node := range forest {
		n += 1 + Count(node.Children)
	}
	return n
}
