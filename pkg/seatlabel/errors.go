package seatlabel

import "errors"

var (
	// ErrInvalidLabel возвращается, когда номер места не удается разобрать
	ErrInvalidLabel = errors.New("seatlabel: invalid seat label")

	// ErrRangeMismatch возвращается, когда конец диапазона недостижим из начала
	ErrRangeMismatch = errors.New("seatlabel: end of range is not reachable from start")
)
