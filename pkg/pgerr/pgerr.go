// Package pgerr классифицирует ошибки PostgreSQL
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки или пустую строку, если это не ошибка PostgreSQL
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsConflict - ошибка, означающая конкурентное бронирование того же ресурса
func IsConflict(err error) bool {
	switch Code(err) {
	case CodeUniqueViolation, CodeExclusionViolation, CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}

// IsConstraint проверяет нарушение конкретного ограничения
func IsConstraint(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint == constraint
	}
	return false
}
