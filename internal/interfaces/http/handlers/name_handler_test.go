package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newNameRouter(s *testStack, caller string) *gin.Engine {
	h := NewNameHandler(s.registry)
	r := gin.New()
	r.GET("/names", h.List)
	r.GET("/names/:name", h.Get)
	r.GET("/names/:name/owner", h.GetOwner)
	r.GET("/names/:name/controller", h.GetController)
	r.GET("/names/:name/expiration", h.GetExpiration)
	r.GET("/names/:name/token-id", h.GetTokenID)
	r.GET("/names/:name/records/:type", h.ListRecordKeys)
	r.GET("/names/:name/records/:type/:key", h.GetRecord)
	r.GET("/names/:name/entries/:type/:key", h.GetEntry)
	r.GET("/tokens/:id/name", h.GetTokenName)
	r.GET("/tokens/:id/uri", h.GetTokenURI)

	authed := r.Group("/", asCaller(caller))
	authed.PUT("/names/:name/controller", h.SetController)
	authed.PUT("/names/:name/records/:type/:key", h.SetRecord)
	authed.PUT("/names/:name/entries/:type/:key", h.SetEntry)
	authed.POST("/names/:name/migrate", h.Migrate)
	return r
}

func TestNameHandler_Reads(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{2})
	r := newNameRouter(s, testUserAddr)

	w := doJSON(t, r, http.MethodGet, "/names/ArkDev", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"arkdev"`)
	require.Contains(t, w.Body.String(), `"tokenId":1`)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/owner", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), testUserAddr)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/controller", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/expiration", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"expiresAt"`)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/token-id", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"tokenId":1`)

	w = doJSON(t, r, http.MethodGet, "/tokens/1/name", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"arkdev"`)

	w = doJSON(t, r, http.MethodGet, "/tokens/not-a-number/name", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/names/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNameHandler_List(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"alpha", "beta", "gamma"}, []int64{1, 1, 1})
	r := newNameRouter(s, testUserAddr)

	w := doJSON(t, r, http.MethodGet, "/names?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"alpha"`)
	require.Contains(t, w.Body.String(), `"name":"beta"`)
	require.NotContains(t, w.Body.String(), `"name":"gamma"`)
	require.Contains(t, w.Body.String(), `"totalCount":3`)
}

func TestNameHandler_SetController(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})

	owner := newNameRouter(s, testUserAddr)
	stranger := newNameRouter(s, testOtherAddr)

	w := doJSON(t, stranger, http.MethodPut, "/names/arkdev/controller", `{"controller":"`+testOtherAddr+`"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, owner, http.MethodPut, "/names/arkdev/controller", `{"controller":"`+testOtherAddr+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, testOtherAddr, s.names.byName["arkdev"].Controller)
}

func TestNameHandler_Records(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	r := newNameRouter(s, testUserAddr)

	w := doJSON(t, r, http.MethodPut, "/names/arkdev/records/string/bio", `{"value":"hello","ttl":300}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/records/string/bio", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"value":"hello"`)
	require.Contains(t, w.Body.String(), `"ttl":300`)

	// Registration seeded the default address record.
	w = doJSON(t, r, http.MethodGet, "/names/arkdev/records/address/evm_default", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), testUserAddr)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/records/address", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"keys":["evm_default"]`)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/records/bogus/bio", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Uint values must be decimal and non-negative.
	w = doJSON(t, r, http.MethodPut, "/names/arkdev/records/uint/score", `{"value":"-5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Writers must own or control the name.
	stranger := newNameRouter(s, testOtherAddr)
	w = doJSON(t, stranger, http.MethodPut, "/names/arkdev/records/string/bio", `{"value":"hijack"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNameHandler_Entries(t *testing.T) {
	s := newTestStack(t)
	r := newNameRouter(s, testOtherAddr)

	// Entries are not gated by ownership and the name need not exist.
	w := doJSON(t, r, http.MethodPut, "/names/arkdev/entries/uint/score", `{"value":"42"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/entries/uint/score?setter="+testOtherAddr, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"value":"42"`)

	// An absent entry reads as the type's zero value.
	w = doJSON(t, r, http.MethodGet, "/names/arkdev/entries/uint/other?setter="+testOtherAddr, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"value":"0"`)

	w = doJSON(t, r, http.MethodGet, "/names/arkdev/entries/uint/score", "")
	require.Equal(t, http.StatusBadRequest, w.Code, "setter is required")
}

func TestNameHandler_MigrateWithoutBridge(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	r := newNameRouter(s, testUserAddr)

	w := doJSON(t, r, http.MethodPost, "/names/arkdev/migrate", `{"mode":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "bridge contract is not set")
}

func TestNameHandler_TokenURIWithoutMetadataBinding(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	r := newNameRouter(s, testUserAddr)

	w := doJSON(t, r, http.MethodGet, "/tokens/1/uri", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "metadata contract is not set")
}
