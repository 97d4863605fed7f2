// Package qr формирует и разбирает содержимое QR-кодов участников клуба.
//
// Формат полезной нагрузки: MEMBER:<member_id>:<full_name>. Подписи и срока
// действия нет, код печатается на карте участника и сканируется на входе.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Prefix начало полезной нагрузки QR-кода участника.
const Prefix = "MEMBER"

// DefaultSize размер PNG в пикселях по умолчанию.
const DefaultSize = 256

// Payload возвращает строку для QR-кода участника.
func Payload(memberID, fullName string) string {
	return Prefix + ":" + memberID + ":" + fullName
}

// MemberID извлекает идентификатор участника из содержимого QR-кода.
// Строка без двоеточия считается уже готовым идентификатором.
func MemberID(payload string) string {
	payload = strings.TrimSpace(payload)
	if !strings.Contains(payload, ":") {
		return payload
	}
	parts := strings.SplitN(payload, ":", 3)
	return parts[1]
}

// PNG рисует QR-код с переданным содержимым.
func PNG(payload string, size int) ([]byte, error) {
	const op = "qr.PNG"
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return png, nil
}
