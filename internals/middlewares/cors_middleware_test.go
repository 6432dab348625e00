package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, defaultOrigins, allowedOrigins(""))
	assert.Equal(t, defaultOrigins, allowedOrigins(" , *"))
	assert.Equal(t,
		[]string{"https://inkubator.example.ac.id", "http://localhost:5173"},
		allowedOrigins("https://inkubator.example.ac.id/, http://localhost:5173"))
}
