package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-pos-ar/internal/application/auth"
	"github.com/jhoicas/ventas-pos-ar/internal/application/billing"
	"github.com/jhoicas/ventas-pos-ar/internal/application/sales"
	"github.com/jhoicas/ventas-pos-ar/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-pos-ar/internal/infrastructure/wsfe"
	apphttp "github.com/jhoicas/ventas-pos-ar/internal/interfaces/http"
	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

// newTestAPI arma la API completa sobre el store en memoria.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	mapper := billing.NewInvoiceTypeMapper(nil)
	classifier := billing.NewSaleClassifier(
		store.Companies(), store.Customers(), mapper,
		billing.NewSequenceResolver(store.Sequences()), nil,
	)
	invoiceUC := billing.NewCreateInvoiceUseCase(
		store, store.Sales(), store.Products(), store.PointsOfSale(), store.Sequences(), store.Invoices(), nil,
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}).WithHashCost(bcrypt.MinCost),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		CompanyUC:  usecase.NewCompanyUseCase(store.Companies()),
		ProductUC:  usecase.NewProductUseCase(store.Products()),
		PosUC:      usecase.NewPointOfSaleUseCase(store.PointsOfSale(), store.Sequences(), mapper),
		CustomerUC: billing.NewCustomerUseCase(store.Customers()),
		SaleUC: sales.NewSaleUseCase(
			store.Sales(), store.Customers(), store.Products(), store.PointsOfSale(), store.Sequences(),
			classifier, "", nil,
		),
		InvoiceUC: invoiceUC,
		PDFUC: billing.NewPDFUseCase(store.Invoices(), store.Companies(), store.Customers(), mapper,
			pdf.NewMarotoPDFGenerator()),
		WSFEUC: billing.NewWSFEUseCase(store.Invoices(), store.Companies(), store.Customers(), mapper,
			wsfe.NewRequestBuilder(), afip.EnvironmentHomologacion),
		JWTSecret: testJWTSecret,
	})
	return app
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (a *apiClient) do(method, path string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

// mustJSON ejecuta la petición, verifica el status y decodifica la respuesta.
func (a *apiClient) mustJSON(method, path string, body any, status int) map[string]any {
	a.t.Helper()
	resp, raw := a.do(method, path, body)
	require.Equal(a.t, status, resp.StatusCode, string(raw))
	var out map[string]any
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out
}

// loginAdmin crea empresa responsable inscripta, registra un admin y hace login.
func loginAdmin(t *testing.T, app *fiber.App) (*apiClient, string) {
	t.Helper()
	api := &apiClient{t: t, app: app}
	company := api.mustJSON(http.MethodPost, "/api/companies", map[string]any{
		"name": "Sur SRL", "cuit": "30-71432198-2", "iva_condition": afip.IVAResponsableInscripto,
	}, http.StatusCreated)
	companyID := company["id"].(string)

	api.mustJSON(http.MethodPost, "/api/auth/register", map[string]any{
		"email": "Admin@Sur.com.ar", "password": "secreto123", "company_id": companyID, "role": "admin",
	}, http.StatusCreated)
	login := api.mustJSON(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "admin@sur.com.ar", "password": "secreto123",
	}, http.StatusOK)
	api.token = login["token"].(string)
	return api, companyID
}

func TestAPI_Health(t *testing.T) {
	api := &apiClient{t: t, app: newTestAPI(t)}
	out := api.mustJSON(http.MethodGet, "/health", nil, http.StatusOK)
	assert.Equal(t, "ok", out["status"])
}

func TestAPI_LoginWrongPassword(t *testing.T) {
	app := newTestAPI(t)
	loginAdmin(t, app)
	api := &apiClient{t: t, app: app}
	resp, _ := api.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "admin@sur.com.ar", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ProtectedRequiresToken(t *testing.T) {
	api := &apiClient{t: t, app: newTestAPI(t)}
	resp, _ := api.do(http.MethodGet, "/api/sales", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_UsersMe(t *testing.T) {
	api, companyID := loginAdmin(t, newTestAPI(t))
	me := api.mustJSON(http.MethodGet, "/api/users/me", nil, http.StatusOK)
	assert.Equal(t, "admin@sur.com.ar", me["email"])
	assert.Equal(t, companyID, me["company_id"])
}

func TestAPI_CompanyOfAnotherTenantForbidden(t *testing.T) {
	api, _ := loginAdmin(t, newTestAPI(t))
	resp, _ := api.do(http.MethodGet, "/api/companies/00000000-0000-0000-0000-0000000000ff", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_SaleClassificationAndInvoice(t *testing.T) {
	api, _ := loginAdmin(t, newTestAPI(t))

	pos := api.mustJSON(http.MethodPost, "/api/pos", map[string]any{"number": 3, "name": "Mostrador"}, http.StatusCreated)
	posID := pos["id"].(string)
	seqA := api.mustJSON(http.MethodPost, "/api/pos/"+posID+"/sequences", map[string]any{"letter": "A"}, http.StatusCreated)
	assert.Equal(t, "1", seqA["invoice_type"])
	api.mustJSON(http.MethodPost, "/api/pos/"+posID+"/sequences", map[string]any{"letter": "B"}, http.StatusCreated)

	ri := api.mustJSON(http.MethodPost, "/api/customers", map[string]any{
		"name": "Cliente RI", "iva_condition": afip.IVAResponsableInscripto, "vat_number": "20-12345678-6",
	}, http.StatusCreated)
	cf := api.mustJSON(http.MethodPost, "/api/customers", map[string]any{
		"name": "Consumidor", "iva_condition": afip.IVAConsumidorFinal,
	}, http.StatusCreated)
	exento := api.mustJSON(http.MethodPost, "/api/customers", map[string]any{
		"name": "Exento sin CUIT", "iva_condition": afip.IVAExento,
	}, http.StatusCreated)
	service := api.mustJSON(http.MethodPost, "/api/products", map[string]any{
		"sku": "SOP-1", "name": "Soporte mensual", "type": afip.ProductTypeService, "price": "1000", "tax_rate": "21",
	}, http.StatusCreated)

	sale := api.mustJSON(http.MethodPost, "/api/sales", map[string]any{
		"customer_id": ri["id"], "pos_id": posID,
	}, http.StatusCreated)
	saleID := sale["id"].(string)
	assert.Equal(t, "A", sale["invoice_letter"])
	assert.Equal(t, "1", sale["invoice_type"])

	sale = api.mustJSON(http.MethodPut, "/api/sales/"+saleID+"/party", map[string]any{"customer_id": cf["id"]}, http.StatusOK)
	assert.Equal(t, "B", sale["invoice_letter"])
	assert.Equal(t, "6", sale["invoice_type"])

	// Factura E sin secuencia: 422 y la venta conserva la clasificación anterior.
	resp, raw := api.do(http.MethodPut, "/api/sales/"+saleID+"/party", map[string]any{"customer_id": exento["id"]})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), "MISSING_SEQUENCE")
	sale = api.mustJSON(http.MethodGet, "/api/sales/"+saleID, nil, http.StatusOK)
	assert.Equal(t, "B", sale["invoice_letter"])
	assert.Equal(t, cf["id"], sale["customer_id"])

	api.mustJSON(http.MethodPost, "/api/sales/"+saleID+"/lines", map[string]any{
		"product_id": service["id"], "quantity": "2",
	}, http.StatusOK)
	api.mustJSON(http.MethodPost, "/api/sales/"+saleID+"/confirm", nil, http.StatusOK)

	resp, _ = api.do(http.MethodPut, "/api/sales/"+saleID+"/pos", map[string]any{"pos_id": ""})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	inv := api.mustJSON(http.MethodPost, "/api/sales/"+saleID+"/invoice", nil, http.StatusCreated)
	invID := inv["id"].(string)
	assert.Equal(t, "6", inv["invoice_type"])
	assert.Equal(t, "B", inv["letter"])
	assert.Equal(t, afip.ConceptServices, inv["concept"])
	assert.NotEmpty(t, inv["billing_start_date"])
	assert.Equal(t, float64(3), inv["pos_number"])

	got := api.mustJSON(http.MethodGet, "/api/invoices/"+invID, nil, http.StatusOK)
	assert.Equal(t, invID, got["id"])

	resp, raw = api.do(http.MethodGet, "/api/invoices/"+invID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = api.do(http.MethodGet, "/api/invoices/"+invID+"/wsfe", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, strings.Contains(string(raw), "FECAESolicitar"))
	assert.Contains(t, string(raw), "<ar:CbteTipo>6</ar:CbteTipo>")
}

func TestAPI_VendedorCannotConfigurePos(t *testing.T) {
	app := newTestAPI(t)
	admin, companyID := loginAdmin(t, app)
	admin.mustJSON(http.MethodPost, "/api/auth/register", map[string]any{
		"email": "caja@sur.com.ar", "password": "secreto123", "company_id": companyID, "role": "vendedor",
	}, http.StatusCreated)

	seller := &apiClient{t: t, app: app}
	login := seller.mustJSON(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "caja@sur.com.ar", "password": "secreto123",
	}, http.StatusOK)
	seller.token = login["token"].(string)

	resp, _ := seller.do(http.MethodPost, "/api/pos", map[string]any{"number": 5, "name": "Caja"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = seller.do(http.MethodGet, "/api/pos", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
