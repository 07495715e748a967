package model

import "encoding/json"

// DemoRow: строка демонстрационной таблицы.
type DemoRow struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

func (r DemoRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.ID, r.Name})
}
