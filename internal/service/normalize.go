package service

import "strings"

// normalize приводит строку к виду, в котором ее хранит и присылает клиент.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
