package seed

import (
	"github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
)

// Purchases returns the demo order history of customers 1, 2 and 3.
func Purchases() []purchase.Purchase {
	return []purchase.Purchase{
		{ID: "ORD-2024-001", CustomerID: 1, Date: day("2024-01-15"), Products: []string{"Producto A", "Producto B"},
			Category: "Electrónicos", Amount: 2500.00, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "ORD-2024-002", CustomerID: 1, Date: day("2024-01-28"), Products: []string{"Producto C"},
			Category: "Hogar", Amount: 1200.50, Status: purchase.Completed, PaymentMethod: "Transferencia"},
		{ID: "ORD-2024-003", CustomerID: 1, Date: day("2024-02-10"), Products: []string{"Producto D", "Producto E", "Producto F"},
			Category: "Ropa", Amount: 850.75, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "ORD-2024-004", CustomerID: 1, Date: day("2024-02-22"), Products: []string{"Producto G"},
			Category: "Electrónicos", Amount: 3200.00, Status: purchase.Pending, PaymentMethod: "Transferencia"},
		{ID: "ORD-2024-005", CustomerID: 1, Date: day("2024-03-05"), Products: []string{"Producto H", "Producto I"},
			Category: "Hogar", Amount: 1800.25, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "ORD-2024-006", CustomerID: 1, Date: day("2024-03-18"), Products: []string{"Producto J"},
			Category: "Deportes", Amount: 650.00, Status: purchase.Cancelled, PaymentMethod: "Transferencia"},
		{ID: "ORD-2024-007", CustomerID: 1, Date: day("2024-04-02"), Products: []string{"Producto K", "Producto L"},
			Category: "Electrónicos", Amount: 4100.50, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "ORD-2024-008", CustomerID: 1, Date: day("2024-04-15"), Products: []string{"Producto M"},
			Category: "Ropa", Amount: 320.75, Status: purchase.Completed, PaymentMethod: "Transferencia"},

		{ID: "INV-2025-001", CustomerID: 2, Date: day("2025-01-15"), Products: []string{"Arroz Blanco 1kg", "Aceite 1L"},
			Category: "Alimentos", Amount: 2500.00, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "INV-2025-002", CustomerID: 2, Date: day("2025-01-08"), Products: []string{"Detergente 2kg"},
			Category: "Hogar", Amount: 1800.50, Status: purchase.Completed, PaymentMethod: "Transferencia"},
		{ID: "INV-2024-156", CustomerID: 2, Date: day("2024-12-22"), Products: []string{"Frijoles Negros 1kg", "Azúcar 1kg", "Café 250g"},
			Category: "Alimentos", Amount: 3200.75, Status: purchase.Completed, PaymentMethod: "Efectivo"},
		{ID: "INV-2024-145", CustomerID: 2, Date: day("2024-12-15"), Products: []string{"Ventilador de mesa"},
			Category: "Electrónicos", Amount: 950.00, Status: purchase.Refunded, PaymentMethod: "Transferencia"},
		{ID: "INV-2024-132", CustomerID: 2, Date: day("2024-11-28"), Products: []string{"Juego de sábanas", "Toallas"},
			Category: "Hogar", Amount: 4100.25, Status: purchase.Completed, PaymentMethod: "Efectivo"},

		{ID: "ORD-2025-014", CustomerID: 3, Date: day("2025-01-10"), Products: []string{"Pasta 500g", "Salsa de tomate"},
			Category: "Alimentos", Amount: 2340.00, Status: purchase.Completed, PaymentMethod: "Efectivo"},
	}
}

// PurchaseRecords returns Purchases as data view records.
func PurchaseRecords() []record.Record {
	ps := Purchases()
	out := make([]record.Record, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ToRecord())
	}
	return out
}
