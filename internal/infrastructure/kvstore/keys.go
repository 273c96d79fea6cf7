// Package kvstore implementa los repositorios de colecciones sobre cualquier repository.KV:
// cada colección es un arreglo JSON bajo una clave y cada escritura reemplaza el documento completo.
package kvstore

// Claves del almacenamiento (compatibles con los datos de la versión de escritorio).
const (
	KeyProducts      = "farmacia_products"
	KeySales         = "farmacia_sales"
	KeySettings      = "farmacia_settings"
	KeyClients       = "farmacia_clients"
	KeyUsers         = "farmacia_users"
	KeyLedgerPeriods = "farmacia_ledger_periods"
	KeyResetComplete = "SYSTEM_RESET_COMPLETE"
)

// CollectionKeys claves que se borran en el reinicio inicial del sistema.
var CollectionKeys = []string{
	KeyProducts,
	KeySales,
	KeySettings,
	KeyClients,
	KeyUsers,
	KeyLedgerPeriods,
}
