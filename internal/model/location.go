package model

// Location представляет пару провинция/город: естественный ключ, на который ссылаются достопримечательности.
type Location struct {
	Province string `db:"province" json:"province"`
	City     string `db:"city" json:"city"`
}

// Coordinate привязывает географическую точку к локации (первая таблица достопримечательностей).
type Coordinate struct {
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Province  string  `db:"province"`
	City      string  `db:"city"`
}

// Location возвращает локацию, к которой относится точка.
func (c Coordinate) Location() Location {
	return Location{Province: c.Province, City: c.City}
}
