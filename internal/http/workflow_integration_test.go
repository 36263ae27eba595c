package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/domain/auth"
	"github.com/order-wizard/ow-api/internal/domain/model"
	"github.com/order-wizard/ow-api/internal/mocks"
	"github.com/order-wizard/ow-api/internal/service"
)

// workflowFixture wires the full router with in-memory stores, a mock
// identity provider, and a mocked order repository, then runs it behind a
// real HTTP server.
type workflowFixture struct {
	server *httptest.Server
	client *http.Client
	repo   *mocks.MockOrderRepository
	stack  *authStack
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	stack := newAuthStack()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	orders := service.NewOrderService(service.OrderServiceOptions{Repo: repo, Logger: discardLogger()})

	router := NewRouter(RouterServices{
		Auth:   stack.service,
		Orders: orders,
		HTTP:   config.HTTPConfig{AllowedOrigins: "http://localhost:5173"},
		OAuth: config.OAuthConfig{
			SuccessRedirect: "http://localhost:5173/auth/success",
		},
		Logger: discardLogger(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &workflowFixture{server: server, client: client, repo: repo, stack: stack}
}

// login drives /auth/login and /auth/callback over the wire and returns the
// session cookie.
func (f *workflowFixture) login(t *testing.T) *http.Cookie {
	t.Helper()

	resp, err := f.client.Get(f.server.URL + "/auth/login")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	authURL, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := authURL.Query().Get("state")
	require.NotEmpty(t, state)

	resp, err = f.client.Get(f.server.URL + "/auth/callback?code=wf-code&state=" + url.QueryEscape(state))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "http://localhost:5173/auth/success", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (f *workflowFixture) do(t *testing.T, method, path string, cookie *http.Cookie, body string) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequest(method, f.server.URL+path, nil)
	}
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := f.client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestWorkflow_LoginMeLogout(t *testing.T) {
	f := newWorkflowFixture(t)
	cookie := f.login(t)

	// Authenticated identity round-trips through /auth/me.
	resp := f.do(t, http.MethodGet, "/auth/me", cookie, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot auth.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	resp.Body.Close()
	assert.Equal(t, "mock-user-1", snapshot.User.ID)

	// Logout clears the cookie and removes the session.
	resp = f.do(t, http.MethodPost, "/auth/logout", cookie, "")
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, -1, resp.Cookies()[0].MaxAge)

	resp = f.do(t, http.MethodGet, "/auth/me", cookie, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A second logout with the dead cookie is still fine.
	resp = f.do(t, http.MethodPost, "/auth/logout", cookie, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestWorkflow_StateIsSingleUse(t *testing.T) {
	f := newWorkflowFixture(t)

	resp, err := f.client.Get(f.server.URL + "/auth/login")
	require.NoError(t, err)
	resp.Body.Close()
	authURL, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	state := authURL.Query().Get("state")

	callback := "/auth/callback?code=wf-code&state=" + url.QueryEscape(state)

	resp = f.do(t, http.MethodGet, callback, nil, "")
	resp.Body.Close()
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	// Replaying the same state is rejected.
	resp = f.do(t, http.MethodGet, callback, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWorkflow_OrderCRUD(t *testing.T) {
	f := newWorkflowFixture(t)
	cookie := f.login(t)

	created := model.Order{
		ID:           "wf-order-1",
		UserID:       "mock-user-1",
		OrderNumber:  "112-334",
		ProductName:  "Mechanical keyboard",
		OrderDate:    "2025-05-28",
		ProductImage: "https://img.example/keyboard.jpg",
		Price:        "89.00",
		Status:       model.OrderStatusUncommented,
	}
	f.repo.EXPECT().Create(gomock.Any(), "mock-user-1", gomock.Any()).Return(created, nil)
	f.repo.EXPECT().ListByUser(gomock.Any(), "mock-user-1").Return([]model.Order{created}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), "mock-user-1", created.ID).Return(nil)

	resp := f.do(t, http.MethodPost, "/orders", cookie,
		`{"id":"wf-order-1","orderNumber":"112-334","productName":"Mechanical keyboard","orderDate":"2025-05-28","productImage":"https://img.example/keyboard.jpg","price":"89.00","status":"uncommented"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, created.ID, out.ID)

	resp = f.do(t, http.MethodGet, "/orders", cookie, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)

	resp = f.do(t, http.MethodDelete, "/orders/"+created.ID, cookie, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestWorkflow_OrdersRequireAuth(t *testing.T) {
	f := newWorkflowFixture(t)

	resp := f.do(t, http.MethodGet, "/orders", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWorkflow_Healthz(t *testing.T) {
	f := newWorkflowFixture(t)

	resp := f.do(t, http.MethodGet, "/healthz", nil, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWorkflow_OpenAPIDocument(t *testing.T) {
	f := newWorkflowFixture(t)

	resp := f.do(t, http.MethodGet, "/openapi.json", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.NotEmpty(t, doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/orders/{id}")
	assert.Contains(t, doc.Paths, "/auth/callback")
}
