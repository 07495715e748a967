package service

import "errors"

// ErrInvalidInput: запрос не прошел проверку полей.
var ErrInvalidInput = errors.New("некорректные входные данные")
