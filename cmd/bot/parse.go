package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"attractions/internal/client"
)

var errUsage = errors.New("неверные аргументы")

// experiencesPrefix начинает данные кнопки "впечатления достопримечательности".
const experiencesPrefix = "EXP_"

// maxLabelRunes ограничивает длину подписи кнопки.
const maxLabelRunes = 30

// parseLocation разбирает "провинция, город".
func parseLocation(args string) (province, city string, err error) {
	parts := strings.SplitN(args, ",", 2)
	if len(parts) != 2 {
		return "", "", errUsage
	}
	province, city = client.Sanitize(parts[0]), client.Sanitize(parts[1])
	if province == "" || city == "" {
		return "", "", errUsage
	}
	return province, city, nil
}

// parseProjection разбирает "<ид_достопримечательности> <столбец> [столбец...]".
func parseProjection(args string) (int, []string, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return 0, nil, errUsage
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, nil, errUsage
	}
	return id, fields[1:], nil
}

// parseBudget разбирает "<оператор> <цена>", например "<= 50".
func parseBudget(args string) (string, float64, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, errUsage
	}
	price, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, errUsage
	}
	return fields[0], price, nil
}

// parseID разбирает единственный целочисленный аргумент; если он пуст, возвращает def.
func parseID(args string, def int) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		if def < 0 {
			return 0, errUsage
		}
		return def, nil
	}
	id, err := strconv.Atoi(args)
	if err != nil {
		return 0, errUsage
	}
	return id, nil
}

// formatAttractions формирует текст ответа со списком достопримечательностей.
func formatAttractions(province, city string, attractions []client.Attraction) string {
	if len(attractions) == 0 {
		return fmt.Sprintf("В %s (%s) ничего не найдено.", city, province)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Найдено в %s (%s): %d\n", city, province, len(attractions))
	for _, a := range attractions {
		fmt.Fprintf(&b, "#%d %s\n", a.ID, a.Name)
	}
	return b.String()
}

// formatRows выводит строки проекции с заголовком из выбранных столбцов.
func formatRows(columns []string, rows [][]any) string {
	if len(rows) == 0 {
		return "Впечатлений нет."
	}
	var b strings.Builder
	b.WriteString(strings.Join(columns, " | "))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// buttonLabel укорачивает название для кнопки по символам, а не по байтам:
// Telegram отклоняет сообщение с некорректным UTF-8.
func buttonLabel(name string) string {
	if r := []rune(name); len(r) > maxLabelRunes {
		return string(r[:maxLabelRunes]) + "..."
	}
	return name
}

// parseExperiencesCallback извлекает ID достопримечательности из данных кнопки.
func parseExperiencesCallback(data string) (int, bool) {
	if !strings.HasPrefix(data, experiencesPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(data, experiencesPrefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
