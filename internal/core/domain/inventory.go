package domain

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementEntrada MovementType = "ENTRADA"
	MovementSalida  MovementType = "SALIDA"
)

// Ref is the compact {id, nombre} reference the inventory API embeds in
// other resources.
type Ref struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Product is the read model returned by GET /productos.
type Product struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion"`
	StockActual   int       `json:"stockActual"`
	StockMinimo   int       `json:"stockMinimo"`
	Categoria     *Ref      `json:"categoria,omitempty"`
	Proveedor     *Ref      `json:"proveedor,omitempty"`
	FechaCreacion Timestamp `json:"fechaCreacion"`
}

// Category is the read model returned by GET /categorias.
type Category struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// Movement is the read model returned by GET /movimientos.
type Movement struct {
	ID       int64        `json:"id"`
	Tipo     MovementType `json:"tipo"`
	Cantidad int          `json:"cantidad"`
	Fecha    Timestamp    `json:"fecha"`
	Producto Ref          `json:"producto"`
	Almacen  Ref          `json:"almacen"`
}

// Alert is a low-stock alert returned by GET /alertas.
type Alert struct {
	ID            int64     `json:"id"`
	Producto      Ref       `json:"producto"`
	Mensaje       string    `json:"mensaje"`
	FechaCreacion Timestamp `json:"fechaCreacion"`
	Resuelta      bool      `json:"resuelta"`
}
