package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/shopping-list/internal/domain/product"
	domlist "example.com/shopping-list/internal/domain/shoppinglist"
)

func pricePtr(v float64) *float64 {
	return &v
}

func seedList(t *testing.T, env *testEnv, products ...domproduct.Product) {
	t.Helper()
	ctx := context.Background()
	_, err := env.lists.Create(ctx, &domlist.List{Name: "Groceries"})
	require.NoError(t, err)
	for i := range products {
		p := products[i]
		if p.ListID == 0 {
			p.ListID = 1
		}
		_, err := env.products.Create(ctx, &p)
		require.NoError(t, err)
	}
}

func decodeItems(t *testing.T, body []byte) []domproduct.Item {
	t.Helper()
	var resp struct {
		Data []domproduct.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestCreateProduct_Returns201(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env)

	rec := env.do(t, http.MethodPost, "/api/v1/lists/1/products", map[string]any{
		"name":  "Milk",
		"price": "1.5",
		"store": "Corner",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var item domproduct.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, "1", item.ID)
	require.Equal(t, "1", item.ListID)

	stored, err := env.products.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), stored.Quantity)
	require.NotNil(t, stored.Price)
	require.InDelta(t, 1.5, *stored.Price, 1e-9)
}

func TestCreateProduct_Validation(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env)

	cases := []struct {
		name string
		path string
		body map[string]any
		want int
	}{
		{"missing name", "/api/v1/lists/1/products", map[string]any{"price": "1"}, http.StatusBadRequest},
		{"blank name", "/api/v1/lists/1/products", map[string]any{"name": "   "}, http.StatusBadRequest},
		{"negative quantity", "/api/v1/lists/1/products", map[string]any{"name": "Milk", "quantity": "-2"}, http.StatusBadRequest},
		{"negative price", "/api/v1/lists/1/products", map[string]any{"name": "Milk", "price": "-1"}, http.StatusBadRequest},
		{"bad quantity", "/api/v1/lists/1/products", map[string]any{"name": "Milk", "quantity": "two"}, http.StatusBadRequest},
		{"bad price", "/api/v1/lists/1/products", map[string]any{"name": "Milk", "price": "cheap"}, http.StatusBadRequest},
		{"bad list id", "/api/v1/lists/x/products", map[string]any{"name": "Milk"}, http.StatusBadRequest},
		{"unknown list", "/api/v1/lists/9/products", map[string]any{"name": "Milk"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tc.path, tc.body)
			require.Equal(t, tc.want, rec.Code)
		})
	}

	stored, err := env.products.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestUpdateProduct(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env, domproduct.Product{Name: "Milk", Quantity: 1})

	rec := env.do(t, http.MethodPut, "/api/v1/lists/1/products/1", map[string]any{
		"name":     "Oat milk",
		"quantity": "3",
		"checked":  true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := env.products.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Oat milk", stored.Name)
	require.Equal(t, int64(3), stored.Quantity)
	require.True(t, stored.Checked)

	rec = env.do(t, http.MethodPut, "/api/v1/lists/1/products/99", map[string]any{"name": "Ghost"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts_FiltersByList(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 1},
		domproduct.Product{ListID: 2, Name: "Nails", Quantity: 1},
		domproduct.Product{Name: "Bread", Quantity: 1},
	)

	rec := env.do(t, http.MethodGet, "/api/v1/lists/1/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeItems(t, rec.Body.Bytes())
	require.Len(t, items, 2)
	require.Equal(t, "Milk", items[0].Name)
	require.Equal(t, "Bread", items[1].Name)
}

func TestListProducts_SortAndCheckedLast(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Apple", Quantity: 1, Price: pricePtr(3)},
		domproduct.Product{Name: "Cheese", Quantity: 1, Price: pricePtr(1), Checked: true},
		domproduct.Product{Name: "Bread", Quantity: 1, Price: pricePtr(2)},
	)

	rec := env.do(t, http.MethodGet, "/api/v1/lists/1/products?sort=price&order=desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeItems(t, rec.Body.Bytes())
	require.Equal(t, []string{"Apple", "Bread", "Cheese"}, names(items))

	rec = env.do(t, http.MethodGet, "/api/v1/lists/1/products?sort=name&checked_last=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = decodeItems(t, rec.Body.Bytes())
	require.Equal(t, []string{"Apple", "Bread", "Cheese"}, names(items))

	rec = env.do(t, http.MethodGet, "/api/v1/lists/1/products?sort=colour", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = decodeItems(t, rec.Body.Bytes())
	require.Equal(t, []string{"Apple", "Cheese", "Bread"}, names(items))
}

func names(items []domproduct.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestListProducts_StorageError(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env)
	env.products.listErr = errors.New("db down")

	rec := env.do(t, http.MethodGet, "/api/v1/lists/1/products", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListTotals(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 2, Price: pricePtr(1.25)},
		domproduct.Product{Name: "Bread", Quantity: 1, Price: pricePtr(3), Checked: true},
		domproduct.Product{Name: "Salt", Quantity: 1},
	)

	rec := env.do(t, http.MethodGet, "/api/v1/lists/1/totals", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"count":3,"amount":"5.5","checked_amount":"3","equals_zero":false}`, rec.Body.String())
}

func TestListInfo_PlainText(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 2, Price: pricePtr(1.25)},
		domproduct.Product{Name: "Bread", Quantity: 1, Price: pricePtr(3)},
	)

	rec := env.do(t, http.MethodGet, "/api/v1/lists/1/info?currency=EUR", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "Items: 2\nTotal: 5.5 EUR\n\n", rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env, domproduct.Product{Name: "Milk", Quantity: 1, Price: pricePtr(0.99)})

	rec := env.do(t, http.MethodGet, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var item domproduct.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, "Milk", item.Name)
	require.Equal(t, "0.99", item.Price)

	rec = env.do(t, http.MethodGet, "/api/v1/products/2", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/products/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env, domproduct.Product{Name: "Milk", Quantity: 1})

	rec := env.do(t, http.MethodDelete, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSelected_OnlyFlagged(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 1},
		domproduct.Product{Name: "Bread", Quantity: 1},
	)

	rec := env.do(t, http.MethodPost, "/api/v1/lists/1/products/delete-selected", map[string]any{
		"items": []map[string]any{
			{"id": "1", "selected_for_deletion": true},
			{"id": "2", "selected_for_deletion": false},
			{"id": "77", "selected_for_deletion": true},
		},
	})

	require.Equal(t, http.StatusNoContent, rec.Code)
	remaining, err := env.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "Bread", remaining[0].Name)
}

func TestDeleteAllProducts(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 1},
		domproduct.Product{ListID: 2, Name: "Nails", Quantity: 1},
	)

	rec := env.do(t, http.MethodDelete, "/api/v1/lists/1/products", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	remaining, err := env.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "Nails", remaining[0].Name)
}

func TestAutoComplete(t *testing.T) {
	env := setupAPI(t, nil)
	seedList(t, env,
		domproduct.Product{Name: "Milk", Quantity: 1, Store: "Corner", Category: "Dairy"},
		domproduct.Product{ListID: 2, Name: "Nails", Quantity: 1, Store: "Corner"},
		domproduct.Product{Name: "Milk", Quantity: 1},
	)

	rec := env.do(t, http.MethodGet, "/api/v1/autocomplete", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"names":["Milk","Nails"],"stores":["Corner"],"categories":["Dairy"]}`, rec.Body.String())
}
