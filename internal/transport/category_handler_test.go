package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_ListAndShow(t *testing.T) {
	api := newTestAPI(t)
	api.seed(t)

	w := api.do(http.MethodGet, categoryPrefix, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 4)

	var furniture domain.Category
	for _, c := range categories {
		if c.Name == seed.Furniture {
			furniture = c
		}
	}
	require.NotEmpty(t, furniture.ID)

	w = api.do(http.MethodGet, categoryPrefix+"/"+furniture.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, furniture, got)
}

func TestCategories_ShowNotFound(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, categoryPrefix+"/missing", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCategories_Create(t *testing.T) {
	api := newTestAPI(t)

	w := api.doJSON(http.MethodPost, categoryPrefix, map[string]string{"id": "ignored", "nombre": "Jardín"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, "ignored", got.ID)
	assert.Equal(t, "Jardín", got.Name)
	assert.Equal(t, categoryPrefix+"/"+got.ID, w.Header().Get("Location"))
}

func TestCategories_CreateBlankName(t *testing.T) {
	api := newTestAPI(t)

	w := api.doJSON(http.MethodPost, categoryPrefix, map[string]string{"nombre": " "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "nombre", resp.Errors[0].Field)
}
