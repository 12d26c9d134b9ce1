package archive

import "fbarchive/pkg/facebook"

// FlattenAttachments expands an attachment tree into a flat pre-order
// sequence: the node itself, then each child's flattened subtree in order.
// A nil root yields an empty sequence, which absorbs posts with missing
// attachment data. An explicit stack keeps arbitrarily deep trees off the
// call stack, so nesting depth is unbounded.
func FlattenAttachments(root *facebook.Attachment) []*facebook.Attachment {
	if root == nil {
		return nil
	}

	var nodes []*facebook.Attachment
	stack := []*facebook.Attachment{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}

		nodes = append(nodes, node)

		if node.Subattachments == nil {
			continue
		}
		// Push children in reverse so they pop in document order
		children := node.Subattachments.Data
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return nodes
}
