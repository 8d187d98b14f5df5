package seed

import (
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/domain/user"
)

// UserActivity returns the demo profile history of every demo user.
// The newest login of each user matches the LastLogin of Users(now).
func UserActivity(now time.Time) map[record.ID]user.Activity {
	out := make(map[record.ID]user.Activity, len(demoUsers))
	for _, d := range demoUsers {
		id, _ := record.FormatID(d.id)
		out[id] = activityFrom(now.Add(-d.lastLogin))
	}
	return out
}

func activityFrom(last time.Time) user.Activity {
	at := func(days int, hours time.Duration) time.Time {
		return last.Add(-time.Duration(days)*dayDur - hours)
	}
	return user.Activity{
		Logins: []user.Login{
			{At: at(0, 0), IP: "192.168.1.105", Device: "Chrome en Windows", Location: "Habana, Cuba", Success: true},
			{At: at(1, 5*time.Hour), IP: "192.168.1.105", Device: "Chrome en Windows", Location: "Habana, Cuba", Success: true},
			{At: at(2, 2*time.Hour), IP: "192.168.1.105", Device: "Chrome en Windows", Location: "Habana, Cuba", Success: true},
			{At: at(3, 3*time.Hour), IP: "192.168.1.98", Device: "Firefox en Windows", Location: "Habana, Cuba", Success: false},
			{At: at(4, 6*time.Hour), IP: "192.168.1.105", Device: "Chrome en Windows", Location: "Habana, Cuba", Success: true},
		},
		Actions: []user.Action{
			{At: at(0, time.Hour), Action: "Actualizó información del cliente", Target: "María González Pérez",
				Type: user.ActionUpdate, Details: "Modificó dirección y teléfono de contacto"},
			{At: at(0, 3*time.Hour), Action: "Creó nuevo producto en inventario", Target: "Arroz Blanco 1kg",
				Type: user.ActionCreate, Details: "Agregó 500 unidades al almacén central"},
			{At: at(1, 2*time.Hour), Action: "Procesó venta", Target: "Venta #VT-2024-0892",
				Type: user.ActionSale, Details: "Venta por valor de $2,450.00 CUP"},
			{At: at(1, 8*time.Hour), Action: "Actualizó permisos de usuario", Target: "Carlos Rodríguez",
				Type: user.ActionPermission, Details: "Habilitó acceso a reportes de ventas"},
			{At: at(2, 4*time.Hour), Action: "Generó reporte de inventario", Target: "Reporte mensual",
				Type: user.ActionReport, Details: "Exportó datos de productos con bajo stock"},
		},
		Changes: []user.Change{
			{At: at(0, 2*time.Hour), Change: "Perfil actualizado",
				Description: "Cambió número de teléfono de contacto", ChangedBy: "Ana Martínez (Gerente)"},
			{At: at(5, 5*time.Hour), Change: "Permisos modificados",
				Description: "Se habilitó acceso a gestión de inventario", ChangedBy: "Roberto Silva (Propietario)"},
			{At: at(10, 0), Change: "Almacén reasignado",
				Description: "Transferido de Almacén Santiago a Almacén Central Habana", ChangedBy: "Roberto Silva (Propietario)"},
			{At: at(14, 3*time.Hour), Change: "Contraseña restablecida",
				Description: "Contraseña restablecida por solicitud del usuario", ChangedBy: "Sistema automático"},
		},
	}
}
