package catalog

import "sort"

// Node is one row of the rendered catalog tree. Folder and service nodes
// have a nil Layer; leaf nodes carry their entry.
type Node struct {
	Name     string
	Layer    *LayerEntry
	Children []*Node
}

// IsFolder reports whether the node groups other nodes.
func (n *Node) IsFolder() bool {
	return n.Layer == nil
}

// BuildTree arranges a document into the catalog's display tree: one node
// per service, grouped entries under folder nodes, ungrouped entries
// directly beneath their service. Ordering is deterministic — layers by
// explicit order then name, folders by the smallest order among their
// entries then name — so repeated builds render identically.
func BuildTree(doc *Document) *Node {
	root := &Node{Name: doc.Title}

	for _, svc := range doc.Services {
		svcNode := &Node{Name: svc.Name}
		folders := make(map[string]*Node)

		for i := range svc.Layers {
			entry := &svc.Layers[i]
			leaf := &Node{Name: entry.Name, Layer: entry}

			if entry.Group == "" {
				svcNode.Children = append(svcNode.Children, leaf)
				continue
			}
			folder, ok := folders[entry.Group]
			if !ok {
				folder = &Node{Name: entry.Group}
				folders[entry.Group] = folder
				svcNode.Children = append(svcNode.Children, folder)
			}
			folder.Children = append(folder.Children, leaf)
		}

		sortChildren(svcNode)
		root.Children = append(root.Children, svcNode)
	}
	return root
}

// sortChildren orders a service's children and, recursively, each
// folder's leaves.
func sortChildren(n *Node) {
	for _, child := range n.Children {
		if child.IsFolder() {
			sort.SliceStable(child.Children, func(i, j int) bool {
				return lessLeaf(child.Children[i], child.Children[j])
			})
		}
	}
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		ao, bo := nodeOrder(a), nodeOrder(b)
		if ao != bo {
			return ao < bo
		}
		return a.Name < b.Name
	})
}

func lessLeaf(a, b *Node) bool {
	if a.Layer.Order != b.Layer.Order {
		return a.Layer.Order < b.Layer.Order
	}
	return a.Name < b.Name
}

// nodeOrder is a leaf's explicit order, or a folder's smallest leaf order.
func nodeOrder(n *Node) int {
	if !n.IsFolder() {
		return n.Layer.Order
	}
	min := int(^uint(0) >> 1)
	for _, child := range n.Children {
		if child.Layer != nil && child.Layer.Order < min {
			min = child.Layer.Order
		}
	}
	return min
}
