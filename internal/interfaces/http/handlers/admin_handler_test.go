package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(s *testStack, caller string) *gin.Engine {
	h := NewAdminHandler(s.registry)
	r := gin.New()
	authed := r.Group("/", asCaller(caller))
	authed.PUT("/admin/registrar", h.SetRegistrar)
	authed.PUT("/admin/resolver", h.SetResolver)
	authed.PUT("/admin/bridge", h.SetBridge)
	authed.PUT("/admin/metadata", h.SetMetadata)
	authed.PUT("/names/:name/alternate-resolver", h.SetAlternateResolver)
	return r
}

func TestAdminHandler_SetRegistrar(t *testing.T) {
	s := newTestStack(t)
	owner := newAdminRouter(s, testOwnerAddr)
	stranger := newAdminRouter(s, testUserAddr)

	w := doJSON(t, stranger, http.MethodPut, "/admin/registrar", `{"address":"`+testOtherAddr+`","approved":true}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, owner, http.MethodPut, "/admin/registrar", `{"address":"`+testOtherAddr+`","approved":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, s.settings.approved[testOtherAddr])

	w = doJSON(t, owner, http.MethodPut, "/admin/registrar", `{"address":"`+testOtherAddr+`","approved":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, s.settings.approved[testOtherAddr])

	w = doJSON(t, owner, http.MethodPut, "/admin/registrar", `{"address":"not-an-address","approved":true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_Bindings(t *testing.T) {
	s := newTestStack(t)
	owner := newAdminRouter(s, testOwnerAddr)

	for path, key := range map[string]string{
		"/admin/resolver": "resolver_contract",
		"/admin/bridge":   "bridge_contract",
		"/admin/metadata": "metadata_contract",
	} {
		w := doJSON(t, owner, http.MethodPut, path, `{"address":"`+testOtherAddr+`"}`)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Equal(t, testOtherAddr, s.settings.values[key], path)
	}
}

func TestAdminHandler_SetAlternateResolver(t *testing.T) {
	s := newTestStack(t)
	s.register(t, testUserAddr, []string{"arkdev"}, []int64{1})
	owner := newAdminRouter(s, testOwnerAddr)
	stranger := newAdminRouter(s, testUserAddr)

	w := doJSON(t, stranger, http.MethodPut, "/names/arkdev/alternate-resolver", `{"address":"`+testOtherAddr+`"}`)
	require.Equal(t, http.StatusForbidden, w.Code, "owning the name does not grant resolver binding")

	w = doJSON(t, owner, http.MethodPut, "/names/arkdev/alternate-resolver", `{"address":"`+testOtherAddr+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, s.names.byName["arkdev"].HasAlternateResolver())

	// Empty address clears the binding.
	w = doJSON(t, owner, http.MethodPut, "/names/arkdev/alternate-resolver", `{"address":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, s.names.byName["arkdev"].HasAlternateResolver())
}
