package user

// NavigationItem is one sidebar entry.
type NavigationItem struct {
	Label   string
	Path    string
	Icon    string
	Tooltip string
	roles   []Role
}

var navigation = []NavigationItem{
	{"Dashboard", "/dashboard", "LayoutDashboard", "Panel de control principal", []Role{Owner, Manager}},
	{"Usuarios", "/user-management", "Users", "Gestión de usuarios del sistema", []Role{Owner, Manager}},
	{"Clientes", "/customer-management", "Building2", "Administración de clientes", []Role{Owner, Manager, Staff}},
	{"Inventario", "/inventory", "Package", "Control de inventario", []Role{Owner, Manager, Staff}},
	{"Reportes", "/reports", "FileText", "Informes y análisis", []Role{Owner, Manager}},
	{"Configuración", "/settings", "Settings", "Configuración del sistema", []Role{Owner}},
}

// NavigationFor returns the sidebar entries visible to a role, in display order.
// Unknown roles see nothing.
func NavigationFor(r Role) []NavigationItem {
	var out []NavigationItem
	for _, item := range navigation {
		for _, allowed := range item.roles {
			if allowed == r {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
