package entity

// Estados de alerta de stock (derivados, no persistidos).
const (
	AlertStatusNormal   = "normal"
	AlertStatusLow      = "low"
	AlertStatusCritical = "critical"
)

// StockAlert es la vista derivada del estado de stock de un producto.
type StockAlert struct {
	ProductID     string
	SKU           string
	ProductName   string
	StockQuantity int
	MinimumStock  int
	Status        string
}

// AlertSummary conteos de productos por estado.
type AlertSummary struct {
	Critical int
	Low      int
	Normal   int
	Total    int
}
