package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected request so the socket layer can pick
// the right outbound event and REST can pick a status code. None of
// these are fatal; they are all scoped to the requesting connection.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindStateConflict ErrorKind = "state_conflict"
	KindNotFound      ErrorKind = "not_found"
	KindCapacity      ErrorKind = "capacity"
)

type GameError struct {
	Kind    ErrorKind
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newGameError(kind ErrorKind, format string, args ...interface{}) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrValidation(format string, args ...interface{}) *GameError {
	return newGameError(KindValidation, format, args...)
}

func ErrAuthorization(format string, args ...interface{}) *GameError {
	return newGameError(KindAuthorization, format, args...)
}

func ErrStateConflict(format string, args ...interface{}) *GameError {
	return newGameError(KindStateConflict, format, args...)
}

func ErrNotFound(format string, args ...interface{}) *GameError {
	return newGameError(KindNotFound, format, args...)
}

func ErrCapacity(format string, args ...interface{}) *GameError {
	return newGameError(KindCapacity, format, args...)
}

// KindOf returns the kind of a game error, or an empty kind for any
// other error.
func KindOf(err error) ErrorKind {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return ""
}
