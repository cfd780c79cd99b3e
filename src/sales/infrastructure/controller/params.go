package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseDateParam interpreta un query param de fecha YYYY-MM-DD. Vacío
// retorna nil sin error.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// intQueryParam interpreta un query param numérico con valor por defecto
func intQueryParam(ctx *gin.Context, name string, fallback int) int {
	value := ctx.Query(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
