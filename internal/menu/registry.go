package menu

import "strings"

const rootID = "root"

// Node is a menu entry in the registry tree. Nested IDs use ":" to name
// their parent ("applications:detail" sits under "applications").
type Node struct {
	ID          string
	Loader      Loader
	Action      Action
	Children    map[string]*Node
	MultiSelect bool
}

// Registry indexes menu nodes by ID.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry builds the tree from the main menu sections.
func BuildRegistry() *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.root = r.ensure(rootID)
	r.root.Loader = func(Context) ([]Item, error) { return RootItems(), nil }
	for _, section := range Sections() {
		r.add(&Node{
			ID:          section.ID,
			Loader:      section.Load,
			Action:      section.Open,
			MultiSelect: section.MultiSelect,
		})
	}
	return r
}

func (r *Registry) ensure(id string) *Node {
	if node, ok := r.nodes[id]; ok {
		return node
	}
	node := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = node
	return node
}

// add registers node and links it under its parent, creating the parent
// when it is not registered yet.
func (r *Registry) add(node *Node) {
	if node.Children == nil {
		node.Children = make(map[string]*Node)
	}
	if existing, ok := r.nodes[node.ID]; ok {
		for key, child := range existing.Children {
			node.Children[key] = child
		}
	}
	r.nodes[node.ID] = node
	parentID, key := parentKey(node.ID)
	r.ensure(parentID).Children[key] = node
}

func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves the node reached by picking key on parentID.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

func parentKey(id string) (string, string) {
	idx := strings.LastIndex(id, ":")
	if idx < 0 {
		return rootID, id
	}
	return id[:idx], id[idx+1:]
}
