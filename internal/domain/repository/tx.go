package repository

import "context"

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Customers CustomerRepository
	Suppliers SupplierRepository
	Sales     SaleRepository
	Purchases PurchaseRepository
	Movements InventoryMovementRepository
	Sequences SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
