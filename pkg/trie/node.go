package trie

import "github.com/hollis-dev/symserve/pkg/model"

// node is a single character step in the trie. Nodes are owned by their
// parent trie and reachable from the root by exactly one rune path.
type node struct {
	children    map[rune]*node
	terminal    bool
	frequency   int
	completions []model.Completion
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// upsert adds or refreshes the completion record for text at this node.
// Terminal nodes hold at most one record per distinct inserted string.
func (n *node) upsert(text string, meta *Metadata) {
	for i := range n.completions {
		if n.completions[i].Text == text {
			n.completions[i].Frequency = n.frequency
			if meta != nil {
				n.completions[i].Kind = meta.Kind
				n.completions[i].File = meta.File
				n.completions[i].Line = meta.Line
				n.completions[i].Scope = meta.Scope
				n.completions[i].Language = meta.Language
			}
			return
		}
	}
	c := model.Completion{Text: text, Frequency: n.frequency}
	if meta != nil {
		c.Kind = meta.Kind
		c.File = meta.File
		c.Line = meta.Line
		c.Scope = meta.Scope
		c.Language = meta.Language
	}
	n.completions = append(n.completions, c)
}
