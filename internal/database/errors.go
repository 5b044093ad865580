package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// ErrNotFound indica que el registro no existe
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateCode indica que ya existe un cliente con el mismo código
	ErrDuplicateCode = errors.New("duplicate code")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// validID descarta identificadores que no son UUID antes de consultar columnas UUID
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// newID genera el identificador opaco de un registro nuevo
func newID() string {
	return uuid.NewString()
}
