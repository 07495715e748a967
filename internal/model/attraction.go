package model

import "encoding/json"

// Attraction представляет достопримечательность (вторая таблица, ссылается на координаты).
type Attraction struct {
	ID          int     `db:"attraction_id"`
	Name        string  `db:"attraction_name"`
	Description string  `db:"attraction_desc"`
	Category    string  `db:"category"`     // например: museum, park, landmark
	OpeningHour string  `db:"opening_hour"` // "09:00"
	ClosingHour string  `db:"closing_hour"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
}

// NewAttraction: данные для добавления достопримечательности вместе с ее локацией.
type NewAttraction struct {
	Attraction
	Province string
	City     string
}

// Coordinate возвращает строку первой таблицы для новой достопримечательности.
func (a NewAttraction) Coordinate() Coordinate {
	return Coordinate{Latitude: a.Latitude, Longitude: a.Longitude, Province: a.Province, City: a.City}
}

// AttractionUpdate: изменяемые поля достопримечательности. Пустое поле не меняется,
// координаты не меняются никогда.
type AttractionUpdate struct {
	ID          int
	Name        string
	Description string
	Category    string
	OpeningHour string
	ClosingHour string
}

// AttractionSummary описывает строку результата поиска, в JSON это [id, name].
type AttractionSummary struct {
	ID   int    `db:"attraction_id"`
	Name string `db:"attraction_name"`
}

// MarshalJSON кодирует строку массивом, как ее ожидает клиент.
func (s AttractionSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.ID, s.Name})
}

// CityCount хранит количество достопримечательностей в городе, в JSON это [province, city, count].
type CityCount struct {
	Province string `db:"province"`
	City     string `db:"city"`
	Count    int    `db:"attraction_count"`
}

func (c CityCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Province, c.City, c.Count})
}

// ProvinceAverage хранит среднее число достопримечательностей на город провинции, в JSON это [province, average].
type ProvinceAverage struct {
	Province string  `db:"province"`
	Average  float64 `db:"average"`
}

func (p ProvinceAverage) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Province, p.Average})
}
