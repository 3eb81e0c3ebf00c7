// internal/menu/tree.go
package menu

import "go.uber.org/zap"

// BuildTree converts a flat, authority-filtered, pre-sorted menu list into a
// forest. Every input node appears in the output exactly once: a node whose
// parent is missing from the input (dangling reference) or whose ancestry
// loops back to itself (cyclic reference) is demoted to a root and reported
// as a warning, never dropped. Children keep input order.
func BuildTree(flat []*Node, log *zap.SugaredLogger) []*Node {
	index := make(map[string]*Node, len(flat))
	for _, n := range flat {
		n.Children = []*Node{}
		index[n.MenuID] = n
	}

	roots := []*Node{}
	for _, n := range flat {
		if n.ParentID == "" {
			roots = append(roots, n)
			continue
		}
		parent, ok := index[n.ParentID]
		if !ok {
			log.Warnw("parent menu not found, adding as root", "menuId", n.MenuID, "parentMenuId", n.ParentID)
			roots = append(roots, n)
			continue
		}
		if onOwnAncestry(n, index) {
			log.Warnw("cyclic parent reference, adding as root", "menuId", n.MenuID, "parentMenuId", n.ParentID)
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// onOwnAncestry reports whether following ParentID links from n leads back to
// n itself. Such a node would end up inside its own subtree, unreachable from
// any root. The walk stops at the first repeated ancestor so cycles that do
// not contain n terminate too.
func onOwnAncestry(n *Node, index map[string]*Node) bool {
	seen := map[string]bool{}
	cur := n.ParentID
	for cur != "" {
		if cur == n.MenuID {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		p, ok := index[cur]
		if !ok {
			return false
		}
		cur = p.ParentID
	}
	return false
}
