// Package period реализует арифметику расчётных периодов подписок.
package period

import (
	"fmt"
	"time"
)

// Period расчётный период абонемента.
type Period string

const (
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

// ErrUnknown возвращается для неизвестного периода.
var ErrUnknown = fmt.Errorf("unknown billing period")

// Valid сообщает, поддерживается ли период.
func (p Period) Valid() bool {
	switch p {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Months длина периода в месяцах.
func (p Period) Months() (int, error) {
	switch p {
	case Monthly:
		return 1, nil
	case Quarterly:
		return 3, nil
	case Yearly:
		return 12, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, string(p))
}

// End возвращает дату окончания периода, начавшегося в start. Если в целевом
// месяце нет такого числа, берётся его последний день: 31 января + месяц = 28 или 29 февраля.
func (p Period) End(start time.Time) (time.Time, error) {
	m, err := p.Months()
	if err != nil {
		return time.Time{}, err
	}
	first := time.Date(start.Year(), start.Month()+time.Month(m), 1,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	day := min(start.Day(), daysIn(first))
	return first.AddDate(0, 0, day-1), nil
}

// daysIn число дней в месяце t.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// MonthStart первое число месяца для t в его часовом поясе.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DayStart полночь дня t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
