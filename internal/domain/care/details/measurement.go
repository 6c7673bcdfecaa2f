package details

// Measurement es una medición puntual asociada a un evento (hoy solo peso).
type Measurement struct {
	Value float64
	Unit  string // "kg", "lb"
}
