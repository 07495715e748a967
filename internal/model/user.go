package model

import "encoding/json"

// User: посетитель, отмечающий пройденные впечатления.
type User struct {
	ID   int    `db:"user_id"`
	Name string `db:"user_name"`
}

// MarshalJSON кодирует пользователя как [userID, userName].
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{u.ID, u.Name})
}
