package domain

import (
	"errors"
	"strings"
)

// ErrorKind clasifica los errores que la capa de presentación debe distinguir.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindConflict          ErrorKind = "conflict"
	KindAuth              ErrorKind = "auth"
	KindConfiguration     ErrorKind = "configuration"
	KindAuthConfiguration ErrorKind = "auth_configuration"
	KindUpstream          ErrorKind = "upstream"
	KindParse             ErrorKind = "parse"
	KindSchema            ErrorKind = "schema"
)

// Error lleva el tipo de fallo más el contexto de diagnóstico.
// Raw guarda el texto exacto que no se pudo parsear, cuando aplica.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Raw     string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	if e.Message != "" {
		sb.WriteString(e.Message)
	} else {
		sb.WriteString(string(e.Kind) + " error")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind contra los sentinels. Un error auth_configuration también es configuration.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Message != "" || t.Err != nil {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindConfiguration && e.Kind == KindAuthConfiguration
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrAuth              = &Error{Kind: KindAuth}
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrAuthConfiguration = &Error{Kind: KindAuthConfiguration}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrParse             = &Error{Kind: KindParse}
	ErrSchema            = &Error{Kind: KindSchema}
)

// NewError construye un *Error sin causa.
func NewError(kind ErrorKind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// WrapError construye un *Error envolviendo err.
func WrapError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o "" si no hay ninguno.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
