package handlers_test

import (
	"encoding/json"
	"testing"

	"github.com/labstack/echo/v4"
	handlers "github.com/statops/tabstat/cmd/tabstatd/handlers"
	httptestutil "github.com/statops/tabstat/internal/testutils/http"
	apihealth "github.com/statops/tabstat/pkg/api/types/health"
)

func TestHealthHandler(t *testing.T) {
	t.Run("it reports the service as healthy", func(t *testing.T) {
		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/health")

		testee := handlers.HealthHandler("tabstat", "1.2.3")

		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if respRec.Result().StatusCode != 200 {
			t.Errorf("status code %d != 200", respRec.Result().StatusCode)
		}

		actual := apihealth.Response{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json. error = %v", err)
		}

		if actual.Status != "healthy" {
			t.Errorf("unmatch: status: %s != healthy", actual.Status)
		}
		if actual.Service != "tabstat" {
			t.Errorf("unmatch: service: %s != tabstat", actual.Service)
		}
		if actual.Version != "1.2.3" {
			t.Errorf("unmatch: version: %s != 1.2.3", actual.Version)
		}
		if actual.Timestamp.Time().IsZero() {
			t.Errorf("timestamp is not set")
		}
	})
}
