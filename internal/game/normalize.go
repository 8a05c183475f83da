package game

import (
	"regexp"
	"strings"
)

// Значимыми считаются только латинские и кириллические буквы и цифры,
// все остальное удаляется без следа (не заменяется разделителем).
var meaninglessSymbols = regexp.MustCompile(`(?i)[^a-zа-я0-9]+`)

// Normalize приводит сырой текст к канонической форме для сравнения
// со словарями и ключами тем. Функция чистая и идемпотентная.
// Строки в определениях игр не нормализуются повторно — авторы конфигурации
// обязаны указывать уже канонические значения.
func Normalize(raw string) string {
	return strings.ToLower(meaninglessSymbols.ReplaceAllString(raw, ""))
}
