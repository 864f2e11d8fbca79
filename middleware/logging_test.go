package middleware

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/miposta/citas-backend/models"
)

func TestFiltrarSensibles(t *testing.T) {
	body := `{"username":"ana","password":"secreta123","mfa_code":"123456","motivo":"control"}`

	filtrado := filtrarSensibles(body)

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(filtrado), &data); err != nil {
		t.Fatalf("el resultado debe seguir siendo JSON: %v", err)
	}
	if data["password"] != "[FILTERED]" || data["mfa_code"] != "[FILTERED]" {
		t.Errorf("credenciales sin filtrar: %s", filtrado)
	}
	if data["username"] != "ana" || data["motivo"] != "control" {
		t.Errorf("los campos no sensibles deben conservarse: %s", filtrado)
	}
}

func TestFiltrarSensiblesNoJSON(t *testing.T) {
	largo := strings.Repeat("x", 2000)
	filtrado := filtrarSensibles(largo)
	if len(filtrado) > 1020 || !strings.HasSuffix(filtrado, "...[truncated]") {
		t.Errorf("un body no-JSON largo debe truncarse, longitud %d", len(filtrado))
	}
}

func TestNivelPorStatus(t *testing.T) {
	casos := map[int]string{
		200: models.LogLevelSuccess,
		302: models.LogLevelInfo,
		404: models.LogLevelWarning,
		500: models.LogLevelError,
	}
	for status, esperado := range casos {
		if got := nivelPorStatus(status); got != esperado {
			t.Errorf("nivelPorStatus(%d) = %s, se esperaba %s", status, got, esperado)
		}
	}
}
