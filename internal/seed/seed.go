// internal/seed/seed.go
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the dev bring-up seed: tenants with their employees, menus, and
// authority→menu grants. Passwords may be given in plain text (hashed at load
// time) or pre-hashed.
type File struct {
	Tenants []Tenant `yaml:"tenants"`
}

type Tenant struct {
	Code      string     `yaml:"code"`
	Name      string     `yaml:"name"`
	Active    *bool      `yaml:"active"`
	Employees []Employee `yaml:"employees"`
	Menus     []Menu     `yaml:"menus"`
	Grants    []Grant    `yaml:"grants"`
}

func (t Tenant) IsActive() bool {
	return t.Active == nil || *t.Active
}

type Employee struct {
	UserID            string   `yaml:"userId"`
	Name              string   `yaml:"name"`
	DeptCode          string   `yaml:"deptCode"`
	DeptName          string   `yaml:"deptName"`
	Email             string   `yaml:"email"`
	Password          string   `yaml:"password"`
	PasswordHash      string   `yaml:"passwordHash"`
	PasswordChangedAt string   `yaml:"passwordChangedAt"`
	Retired           bool     `yaml:"retired"`
	Authorities       []string `yaml:"authorities"`
}

type Menu struct {
	MenuID       string `yaml:"menuId"`
	Name         string `yaml:"name"`
	ParentMenuID string `yaml:"parentMenuId"`
	Level        int    `yaml:"level"`
	Order        int    `yaml:"order"`
	Icon         string `yaml:"icon"`
	Active       *bool  `yaml:"active"`
}

type Grant struct {
	Authority string   `yaml:"authority"`
	Menus     []string `yaml:"menus"`
}

func (m Menu) IsActive() bool {
	return m.Active == nil || *m.Active
}

// Load parses a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}
