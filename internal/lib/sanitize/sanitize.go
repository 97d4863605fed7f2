// Package sanitize очищает свободный текст от HTML перед сохранением.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text удаляет разметку и лишние пробелы по краям. Сущности HTML раскодируются,
// чтобы в базе лежал обычный текст.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
