package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrForeignKey    = errors.New("referencia inexistente")
	ErrCycleDetected = errors.New("ciclo detectado en la lista de materiales")
)
