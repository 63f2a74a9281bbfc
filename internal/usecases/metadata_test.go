package usecases_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wrld-names.backend/internal/usecases"
)

func TestDataURIMetadata(t *testing.T) {
	provider := usecases.NewDataURIMetadata()

	uri, err := provider.TokenURI(7, "arkdev", 1_800_000_000)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:application/json;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:application/json;base64,"))
	require.NoError(t, err)

	var meta struct {
		Name       string `json:"name"`
		Attributes []struct {
			TraitType string `json:"trait_type"`
			Value     string `json:"value"`
		} `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "arkdev.wrld", meta.Name)
	require.Len(t, meta.Attributes, 2)
	assert.Equal(t, "Token ID", meta.Attributes[0].TraitType)
	assert.Equal(t, "7", meta.Attributes[0].Value)
	assert.Equal(t, "Expires", meta.Attributes[1].TraitType)
	assert.Contains(t, meta.Attributes[1].Value, "2027")
}
