package dto

// AlertaStockResponse lists a product whose stored-part count sits below its
// configured minimum.
type AlertaStockResponse struct {
	IDProducto  uint   `json:"id_producto"`
	Nombre      string `json:"nombre"`
	StockMinimo int    `json:"stock_minimo"`
	StockActual int    `json:"stock_actual"`
}
