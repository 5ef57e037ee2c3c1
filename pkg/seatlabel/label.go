// Package seatlabel работает с номерами мест вида "<зона> <зона> <NNN>".
// Префикс зоны сохраняется как есть, числовой суффикс дополняется нулями до трех цифр.
package seatlabel

import (
	"fmt"
	"strconv"
	"strings"
)

// Label разобранный номер места
type Label struct {
	Prefix string // префикс зоны, например "A B"
	Number int    // числовой суффикс
}

// Parse разбирает номер места на префикс и числовой суффикс.
// Суффиксом считается последний токен, разделенный пробелом.
func Parse(label string) (Label, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Label{}, fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}

	idx := strings.LastIndex(trimmed, " ")
	prefix, suffix := "", trimmed
	if idx >= 0 {
		prefix = strings.TrimRight(trimmed[:idx], " ")
		suffix = trimmed[idx+1:]
	}

	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return Label{}, fmt.Errorf("%w: %q has no numeric suffix", ErrInvalidLabel, label)
	}

	return Label{Prefix: prefix, Number: n}, nil
}

// String возвращает номер места в каноническом виде
func (l Label) String() string {
	return Format(l.Prefix, l.Number)
}

// Next возвращает следующее место в той же зоне
func (l Label) Next() Label {
	return Label{Prefix: l.Prefix, Number: l.Number + 1}
}

// Format собирает номер места. Номера меньше 1000 дополняются нулями до трех цифр,
// номера от 1000 выводятся без дополнения ("1000", а не "01000").
func Format(prefix string, number int) string {
	if prefix == "" {
		return fmt.Sprintf("%03d", number)
	}
	return fmt.Sprintf("%s %03d", prefix, number)
}

// Successor возвращает следующий номер места: суффикс +1, префикс без изменений
func Successor(label string) (string, error) {
	l, err := Parse(label)
	if err != nil {
		return "", err
	}
	return l.Next().String(), nil
}

// ExpandRange возвращает все места от start до end включительно.
// Если end недостижим из start последовательным инкрементом (другая зона или end < start),
// возвращает ErrRangeMismatch - это ошибка конфигурации этажа.
func ExpandRange(start, end string) ([]string, error) {
	from, err := Parse(start)
	if err != nil {
		return nil, err
	}
	to, err := Parse(end)
	if err != nil {
		return nil, err
	}

	if from.Prefix != to.Prefix {
		return nil, fmt.Errorf("%w: prefix %q differs from %q", ErrRangeMismatch, from.Prefix, to.Prefix)
	}
	if to.Number < from.Number {
		return nil, fmt.Errorf("%w: %q is before %q", ErrRangeMismatch, end, start)
	}

	labels := make([]string, 0, to.Number-from.Number+1)
	for current := from; current.Number <= to.Number; current = current.Next() {
		labels = append(labels, current.String())
	}

	return labels, nil
}

var bracketReplacer = strings.NewReplacer("[", "", "]", "", "{", "", "}", "")

// Sanitize удаляет скобки, которые встречаются в сохраненных номерах мест ("[Z 001]" -> "Z 001")
func Sanitize(label string) string {
	return bracketReplacer.Replace(label)
}

// Canonical приводит сохраненный номер места к виду, который генерирует ExpandRange ("[A 1]" -> "A 001").
// Нераспознанный номер возвращается без скобок.
func Canonical(label string) string {
	clean := Sanitize(label)
	parsed, err := Parse(clean)
	if err != nil {
		return clean
	}
	return parsed.String()
}
