package dto

// Band is one colored block on a day row. Fractions are offsets on the
// 24h axis. JSON tags match the plugin wire contract.
type Band struct {
	StartFrac float64 `json:"start_frac"`
	WidthFrac float64 `json:"width_frac"`
	Category  string  `json:"category"`
	Color     string  `json:"color"`
}

type Row struct {
	Date  string `json:"date"`
	Bands []Band `json:"bands"`
}

type WeekLayout struct {
	WeekStart string `json:"week_start"`
	Rows      []Row  `json:"rows"`
}
