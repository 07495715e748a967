package main

import (
	"errors"
	"strconv"
	"strings"

	"attractions/internal/client"
)

var errUsage = errors.New("неверные аргументы")

// parseNewAttraction разбирает "название; провинция; город; широта; долгота[; категория[; описание]]".
func parseNewAttraction(args string) (client.NewAttraction, error) {
	parts := strings.Split(args, ";")
	if len(parts) < 5 {
		return client.NewAttraction{}, errUsage
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	lat, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return client.NewAttraction{}, errUsage
	}
	long, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return client.NewAttraction{}, errUsage
	}
	a := client.NewAttraction{
		Name:     parts[0],
		Province: parts[1],
		City:     parts[2],
		Lat:      lat,
		Long:     long,
	}
	if len(parts) > 5 {
		a.Category = parts[5]
	}
	if len(parts) > 6 {
		a.Description = strings.Join(parts[6:], ";")
	}
	if a.Name == "" {
		return client.NewAttraction{}, errUsage
	}
	return a, nil
}

// parseIDAndText разбирает "<ид> <текст>".
func parseIDAndText(args string) (int, string, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return 0, "", errUsage
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", errUsage
	}
	return id, strings.TrimSpace(parts[1]), nil
}

// allowed проверяет, что чат входит в список операторов.
func allowed(admins []int64, chatID int64) bool {
	for _, id := range admins {
		if id == chatID {
			return true
		}
	}
	return false
}
