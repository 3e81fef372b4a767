package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/application/reporting"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/memory"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/pdf"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/apskaita-api/internal/interfaces/http"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp() *fiber.App {
	store := memory.New()
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ReceiptUC:  purchases.NewReceiptUseCase(store),
		LineItemUC: purchases.NewLineItemUseCase(store),
		CategoryUC: purchases.NewCategoryUseCase(store),
		ReceiptPDF: purchases.NewPDFUseCase(store, pdf.NewMarotoPDFGenerator("test")),
		ReportUC:   reporting.NewReportUseCase(store.Reports(), xlsx.NewReportExporter()),
		Logger:     logger.Nop(),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "cuerpo: %s", raw)
	}
	return resp, out
}

func createCategory(t *testing.T, app *fiber.App, name string) float64 {
	t.Helper()
	resp, body := do(t, app, fiber.MethodPost, "/api/categories", `{"name":"`+name+`"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["id"].(float64)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cheques y líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipts_FlujoMaximaBread(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")

	resp, body := do(t, app, fiber.MethodPost, "/api/receipts", `{"date":"2024-01-05","store":"Maxima"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])

	resp, body = do(t, app, fiber.MethodPost, "/api/receipts/1/items", `{"description":"Bread","quantity":2,"price":1.5,"category_id":1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	itemID := body["id"].(float64)
	assert.Equal(t, float64(1), itemID)

	resp, body = do(t, app, fiber.MethodGet, "/api/receipts/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3.00", body["total"])
	assert.Equal(t, "Maxima", body["store"])

	resp, body = do(t, app, fiber.MethodDelete, "/api/items/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["receipt_id"])

	_, body = do(t, app, fiber.MethodGet, "/api/receipts/1", "")
	assert.Equal(t, "0.00", body["total"])

	resp, _ = do(t, app, fiber.MethodGet, "/api/items/1", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/receipts", resp.Header.Get("Location"))
}

func TestItems_MontosSinRedondeo(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Metals")
	do(t, app, fiber.MethodPost, "/api/receipts", `{"date":"2024-01-05","store":"Maxima"}`)

	resp, _ := do(t, app, fiber.MethodPost, "/api/receipts/1/items", `{"description":"Gold","quantity":3,"price":1234567890.123456789,"category_id":1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = do(t, app, fiber.MethodPost, "/api/receipts/1/items", `{"description":"Silver","quantity":"0.001","price":"0.1","category_id":1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	_, body := do(t, app, fiber.MethodGet, "/api/items/1", "")
	assert.Equal(t, "1234567890.123456789", body["price"])
	assert.Equal(t, "3703703670.37", body["total"])

	_, body = do(t, app, fiber.MethodGet, "/api/items/2", "")
	assert.Equal(t, "0.001", body["quantity"])
	assert.Equal(t, "0.1", body["price"])
}

func TestItems_FormularioConComaDecimal(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")
	do(t, app, fiber.MethodPost, "/api/receipts", `{"date":"2024-01-05","store":"Maxima"}`)

	req := httptest.NewRequest(fiber.MethodPost, "/api/receipts/1/items",
		strings.NewReader("description=Bread&quantity=2&price=1%2C50&category_id=1"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	_, body := do(t, app, fiber.MethodGet, "/api/items/1", "")
	assert.Equal(t, "1.5", body["price"])
	assert.Equal(t, "3.00", body["total"])
}

func TestReceipts_BulkConservaPrecision(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Metals")

	resp, body := do(t, app, fiber.MethodPost, "/api/receipts/bulk", `{"date":"2024-01-05","store":"Maxima","items":[
		{"description":"Gold","quantity":3,"price":1234567890.123456789,"category_id":1}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%v", body)

	_, body = do(t, app, fiber.MethodGet, "/api/receipts/1", "")
	assert.Equal(t, "3703703670.37", body["total"])
}

func TestReceipts_PrecioNegativo(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")
	do(t, app, fiber.MethodPost, "/api/receipts", `{"date":"2024-01-05","store":"Maxima"}`)

	resp, body := do(t, app, fiber.MethodPost, "/api/receipts/1/items", `{"description":"Bread","quantity":1,"price":-5,"category_id":1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "price", body["field"])

	_, body = do(t, app, fiber.MethodGet, "/api/receipts/1/items", "")
	assert.Empty(t, body["items"])
}

func TestReceipts_NoEncontrado(t *testing.T) {
	app := buildTestApp()

	resp, _ := do(t, app, fiber.MethodGet, "/api/receipts/99", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/receipts", resp.Header.Get("Location"))

	resp, body := do(t, app, fiber.MethodPut, "/api/receipts/99", `{"date":"2024-01-05","store":"Rimi"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = do(t, app, fiber.MethodDelete, "/api/receipts/99", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, fiber.MethodGet, "/api/receipts/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id", body["field"])

	resp, _ = do(t, app, fiber.MethodGet, "/api/categories/5", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/categories", resp.Header.Get("Location"))
}

func TestReceipts_BulkExito(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")

	resp, body := do(t, app, fiber.MethodPost, "/api/receipts/bulk", `{
		"date": "2024-01-05", "store": "Maxima",
		"items": [
			{"description": "Bread", "quantity": 2, "price": 1.5, "category_id": 1},
			{"description": "Candy", "quantity": 3, "price": 0.1, "category_id": 1}
		]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.NotContains(t, body, "error")

	_, body = do(t, app, fiber.MethodGet, "/api/receipts/1", "")
	assert.Equal(t, "3.30", body["total"])
}

func TestReceipts_BulkFallaSinFilas(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")

	cases := []struct {
		name, body, contains string
	}{
		{"esquema: precio negativo", `{"store":"Maxima","items":[{"description":"Bread","quantity":1,"price":-5,"category_id":1}]}`, "price"},
		{"esquema: sin items", `{"store":"Maxima"}`, "items"},
		{"json roto", `{"store":`, "JSON"},
		{"categoría inexistente en la segunda línea", `{"date":"2024-01-05","store":"Maxima","items":[
			{"description":"Bread","quantity":1,"price":1,"category_id":1},
			{"description":"Gin","quantity":1,"price":20,"category_id":42}]}`, "category_id"},
		{"fecha inválida", `{"date":"2024-02-30","store":"Maxima","items":[]}`, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, fiber.MethodPost, "/api/receipts/bulk", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			require.Contains(t, body, "id")
			assert.Nil(t, body["id"])
			assert.Contains(t, body["error"], tc.contains)
		})
	}

	_, body := do(t, app, fiber.MethodGet, "/api/receipts", "")
	assert.Empty(t, body["items"], "ningún intento fallido deja filas")
}

func TestReceipts_DeleteEnCascada(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")
	do(t, app, fiber.MethodPost, "/api/receipts/bulk", `{"date":"2024-01-05","store":"Maxima","items":[
		{"description":"Bread","quantity":1,"price":1,"category_id":1},
		{"description":"Milk","quantity":1,"price":1,"category_id":1}]}`)

	resp, _ := do(t, app, fiber.MethodDelete, "/api/receipts/1", "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	for _, path := range []string{"/api/items/1", "/api/items/2", "/api/receipts/1"} {
		resp, _ = do(t, app, fiber.MethodGet, path, "")
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, path)
	}
}

func TestReceipts_PDF(t *testing.T) {
	app := buildTestApp()
	do(t, app, fiber.MethodPost, "/api/receipts", `{"date":"2024-01-05","store":"Maxima"}`)

	resp, _ := do(t, app, fiber.MethodGet, "/api/receipts/1/pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cheque_1.pdf")

	resp, _ = do(t, app, fiber.MethodGet, "/api/receipts/9/pdf", "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports(t *testing.T) {
	app := buildTestApp()
	createCategory(t, app, "Food")
	createCategory(t, app, "Alcohol")
	do(t, app, fiber.MethodPost, "/api/receipts/bulk", `{"date":"2024-01-05","store":"Maxima","items":[
		{"description":"Bread","quantity":2,"price":1.5,"category_id":1}]}`)
	do(t, app, fiber.MethodPost, "/api/receipts/bulk", `{"date":"2024-02-05","store":"Rimi","items":[
		{"description":"Milk","quantity":1,"price":0.99,"category_id":1}]}`)

	resp, body := do(t, app, fiber.MethodGet, "/api/reports/total?from=2024-01-01&to=2024-01-31", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3.00", body["total"])

	_, body = do(t, app, fiber.MethodGet, "/api/reports/total", "")
	assert.Equal(t, "3.99", body["total"])
	period := body["period"].(map[string]any)
	assert.Equal(t, "0001-01-01", period["from"])
	assert.Equal(t, "9999-12-31", period["to"])

	_, body = do(t, app, fiber.MethodGet, "/api/reports/categories?from=2024-03-01", "")
	rows := body["rows"].([]any)
	require.Len(t, rows, 2, "cada categoría aparece aunque no tenga compras")
	first := rows[0].(map[string]any)
	assert.Equal(t, "Alcohol", first["category_name"])
	assert.Equal(t, "0.00", first["total"])
	assert.Equal(t, float64(0), first["count"])

	_, body = do(t, app, fiber.MethodGet, "/api/reports/summary", "")
	assert.Equal(t, "3.99", body["total"])
	assert.Len(t, body["rows"], 2)

	resp, body = do(t, app, fiber.MethodGet, "/api/reports/total?from=ayer", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "from", body["field"])

	resp, _ = do(t, app, fiber.MethodGet, "/api/reports/categories/export?from=2024-01-01&to=2024-01-31", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report_2024-01-01_2024-01-31.xlsx")
}

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := buildTestApp()

	resp, _ := do(t, app, fiber.MethodGet, "/api/categories", "")
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req := httptest.NewRequest(fiber.MethodGet, "/api/categories", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}
