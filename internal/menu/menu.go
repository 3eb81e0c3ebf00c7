// internal/menu/menu.go
package menu

import "context"

// Node is one navigable menu entry. Rows form a forest: ParentID empty means
// root. Reference data only; the core projects and filters, never mutates.
type Node struct {
	MenuID   string  `json:"menuId"`
	Name     string  `json:"name"`
	ParentID string  `json:"parentMenuId,omitempty"`
	Level    int     `json:"level"`
	Order    int     `json:"order"`
	Icon     string  `json:"icon,omitempty"`
	Active   bool    `json:"active"`
	Children []*Node `json:"children"`
}

// Store returns the active menus visible to the given authorities, sorted by
// level then explicit order. The assembler relies on that ordering and does
// not re-sort.
type Store interface {
	FindAccessibleMenus(ctx context.Context, tenantCode string, authorities []string) ([]*Node, error)
}
