package sensor

// Source is an instrument that can be read once per tick.
type Source interface {
	Name() string
	Read() (float64, error)
}
