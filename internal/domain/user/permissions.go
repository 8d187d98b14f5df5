package user

import (
	"fmt"
	"slices"
)

// Permissions maps a section to its action flags. Stored and displayed, never enforced.
type Permissions map[string]map[string]bool

// Section is one permission group of the catalogue.
type Section struct {
	Key     string
	Label   string
	Actions []string
}

var catalogue = []Section{
	{"inventory", "Gestión de Inventario", []string{"view", "create", "edit", "delete", "export"}},
	{"sales", "Operaciones de Ventas", []string{"view", "create", "edit", "delete", "reports"}},
	{"users", "Creación de Usuarios", []string{"view", "create", "edit", "delete", "permissions"}},
	{"customers", "Gestión de Clientes", []string{"view", "create", "edit", "delete", "export"}},
	{"reports", "Acceso a Reportes", []string{"view", "generate", "export", "schedule"}},
	{"settings", "Configuración del Sistema", []string{"view", "edit", "system", "backup"}},
}

// Catalogue returns the permission sections in display order.
func Catalogue() []Section {
	out := make([]Section, len(catalogue))
	for i, s := range catalogue {
		out[i] = Section{Key: s.Key, Label: s.Label, Actions: slices.Clone(s.Actions)}
	}
	return out
}

// NoPermissions returns every catalogue action set to false.
func NoPermissions() Permissions {
	p := make(Permissions, len(catalogue))
	for _, s := range catalogue {
		p[s.Key] = make(map[string]bool, len(s.Actions))
		for _, a := range s.Actions {
			p[s.Key][a] = false
		}
	}
	return p
}

// granted lists the actions a role template enables. Owners get everything.
var granted = map[Role]map[string][]string{
	Manager: {
		"inventory": {"view", "create", "edit", "export"},
		"sales":     {"view", "create", "edit", "reports"},
		"users":     {"view", "edit"},
		"customers": {"view", "create", "edit", "export"},
		"reports":   {"view", "generate", "export"},
		"settings":  {"view"},
	},
	Staff: {
		"inventory": {"view"},
		"sales":     {"view", "create"},
		"customers": {"view", "create", "edit"},
	},
}

// RoleTemplate returns the default permission set for a role.
func RoleTemplate(r Role) Permissions {
	p := NoPermissions()
	if r == Owner {
		for section, actions := range p {
			for a := range actions {
				p[section][a] = true
			}
		}
		return p
	}
	for section, actions := range granted[r] {
		for _, a := range actions {
			p[section][a] = true
		}
	}
	return p
}

// Validate rejects sections or actions outside the catalogue.
func (p Permissions) Validate() error {
	for section, actions := range p {
		idx := slices.IndexFunc(catalogue, func(s Section) bool { return s.Key == section })
		if idx < 0 {
			return fmt.Errorf("unknown permission section %q", section)
		}
		for a := range actions {
			if !slices.Contains(catalogue[idx].Actions, a) {
				return fmt.Errorf("unknown action %q in section %q", a, section)
			}
		}
	}
	return nil
}

// Normalized returns a full catalogue-shaped copy with p's flags applied.
func (p Permissions) Normalized() Permissions {
	out := NoPermissions()
	for section, actions := range p {
		if _, ok := out[section]; !ok {
			continue
		}
		for a, v := range actions {
			if _, ok := out[section][a]; ok {
				out[section][a] = v
			}
		}
	}
	return out
}

// Allows reports whether the action is granted.
func (p Permissions) Allows(section, action string) bool {
	return p[section][action]
}

// Granted counts enabled actions.
func (p Permissions) Granted() int {
	n := 0
	for _, actions := range p {
		for _, v := range actions {
			if v {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}
	out := make(Permissions, len(p))
	for s, actions := range p {
		m := make(map[string]bool, len(actions))
		for a, v := range actions {
			m[a] = v
		}
		out[s] = m
	}
	return out
}
