package chargers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bindCreateCharger(t *testing.T, body string) (*CreateChargerRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/chargers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateChargerRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

func TestCreateChargerAcceptsZeroCoordinates(t *testing.T) {
	// Latitude 0 and longitude 0 are real places; presence, not non-zero, is
	// what validation checks.
	req, err := bindCreateCharger(t, `{
		"name": "Mitad del Mundo",
		"address": "Av. Manuel Cordova Galarza, Quito",
		"latitude": 0,
		"longitude": -78.4558,
		"connectors": [{"port_type": "CCS", "max_power_kw": 50, "count": 1}]
	}`)

	assert.NoError(t, err)
	if assert.NotNil(t, req.Latitude) {
		assert.Equal(t, 0.0, *req.Latitude)
	}
}

func TestCreateChargerRequiresCoordinates(t *testing.T) {
	_, err := bindCreateCharger(t, `{
		"name": "No Fix",
		"address": "Nowhere 1",
		"longitude": 11.5754,
		"connectors": [{"port_type": "Type 2", "max_power_kw": 22, "count": 2}]
	}`)

	assert.Error(t, err)
}

func TestCreateChargerRejectsOutOfRangeLatitude(t *testing.T) {
	_, err := bindCreateCharger(t, `{
		"name": "Off the Map",
		"address": "Nowhere 2",
		"latitude": 91,
		"longitude": 0,
		"connectors": [{"port_type": "CCS", "max_power_kw": 150, "count": 1}]
	}`)

	assert.Error(t, err)
}
