package skm

import "fmt"

// Opt is an optional limb index.
type Opt struct {
	idx uint8
	ok  bool
}

// Some returns an Opt holding i.
func Some(i int) Opt {
	return Opt{idx: uint8(i), ok: true}
}

// Get returns the index and whether it is present.
func (o Opt) Get() (int, bool) {
	return int(o.idx), o.ok
}

func (o Opt) String() string {
	if !o.ok {
		return "-"
	}
	return fmt.Sprint(o.idx)
}

// Node is one limb of the hierarchy.
type Node struct {
	Parent      Opt
	FirstChild  Opt
	NextSibling Opt
	Children    []uint8 // in first-child/next-sibling order
}

// Tree is the limb hierarchy decoded into an arena of nodes. Limb 0 is the root.
type Tree struct {
	Nodes []Node
	// Order lists the reachable limbs depth-first, each child before its next sibling,
	// so every limb appears after its parent.
	Order []uint8
}

// buildTree decodes the first-child/next-sibling byte pairs. It rejects references past
// the limb count, limbs reached twice (cycles, shared children) and a root with siblings.
func buildTree(child, sibling []uint8) (Tree, error) {
	n := len(child)
	t := Tree{Nodes: make([]Node, n)}
	if n == 0 {
		return t, nil
	}
	opt := func(b uint8) (Opt, error) {
		if b == none {
			return Opt{}, nil
		}
		if int(b) >= n {
			return Opt{}, fmt.Errorf("skm: limb reference %d out of %d limbs", b, n)
		}
		return Some(int(b)), nil
	}
	for i := range t.Nodes {
		c, err := opt(child[i])
		if err != nil {
			return Tree{}, err
		}
		s, err := opt(sibling[i])
		if err != nil {
			return Tree{}, err
		}
		t.Nodes[i].FirstChild = c
		t.Nodes[i].NextSibling = s
	}
	if _, ok := t.Nodes[0].NextSibling.Get(); ok {
		return Tree{}, fmt.Errorf("skm: root limb has a sibling")
	}

	seen := make([]bool, n)
	seen[0] = true
	t.Order = append(t.Order, 0)
	var walk func(parent int) error
	walk = func(parent int) error {
		c, ok := t.Nodes[parent].FirstChild.Get()
		for ok {
			if seen[c] {
				return fmt.Errorf("skm: limb %d reached twice", c)
			}
			seen[c] = true
			t.Order = append(t.Order, uint8(c))
			t.Nodes[c].Parent = Some(parent)
			t.Nodes[parent].Children = append(t.Nodes[parent].Children, uint8(c))
			if err := walk(c); err != nil {
				return err
			}
			c, ok = t.Nodes[c].NextSibling.Get()
		}
		return nil
	}
	if err := walk(0); err != nil {
		return Tree{}, err
	}
	return t, nil
}
