package bike

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikemarket/internal/domain/upload"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), []byte("fake image body")...)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads, err := upload.NewService(t.TempDir())
	require.NoError(t, err)

	repo := NewMemoryRepository()
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(repo, uploads))
	return r, repo
}

func addBikeForm(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile(upload.FieldName, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAddBikeCreatesListing(t *testing.T) {
	r, repo := newTestRouter(t)

	body, ct := addBikeForm(t, map[string]string{
		"name":  "Trail Blazer 29",
		"price": "899.99",
		"desc":  "Hardtail trail bike",
	}, "bike.png", pngBytes)

	req := httptest.NewRequest(http.MethodPost, "/api/add-bike", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
		Bike    Bike   `json:"bike"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bike added successfully", resp.Message)
	assert.NotEmpty(t, resp.Bike.ID)
	assert.Equal(t, 899.99, resp.Bike.Price)
	assert.Equal(t, "Hardtail trail bike", resp.Bike.Description)
	assert.Contains(t, resp.Bike.Image, "/uploads/image-")

	bikes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bikes, 1)
	assert.Equal(t, resp.Bike.ID, bikes[0].ID)
}

func TestAddBikeRejectsMissingFields(t *testing.T) {
	r, repo := newTestRouter(t)

	body, ct := addBikeForm(t, map[string]string{
		"name":  "Trail Blazer 29",
		"price": "899.99",
	}, "bike.png", pngBytes)

	req := httptest.NewRequest(http.MethodPost, "/api/add-bike", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Desc")

	bikes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bikes)
}

func TestAddBikeRequiresImageFile(t *testing.T) {
	r, _ := newTestRouter(t)

	body, ct := addBikeForm(t, map[string]string{
		"name":  "Trail Blazer 29",
		"price": "899.99",
		"desc":  "Hardtail trail bike",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/add-bike", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Bike image is required"}`, rec.Body.String())
}

func TestAddBikeRejectsNonImageFile(t *testing.T) {
	r, repo := newTestRouter(t)

	body, ct := addBikeForm(t, map[string]string{
		"name":  "Trail Blazer 29",
		"price": "899.99",
		"desc":  "Hardtail trail bike",
	}, "notes.txt", []byte("just some plain text, not an image"))

	req := httptest.NewRequest(http.MethodPost, "/api/add-bike", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Only image files are allowed"}`, rec.Body.String())

	bikes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bikes)
}

func TestListBikesEmptyCatalogIsJSONArray(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bikes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestListBikesReturnsCatalog(t *testing.T) {
	r, repo := newTestRouter(t)

	for _, n := range []string{"one", "two"} {
		b := validBike()
		b.Name = n
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bikes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var bikes []Bike
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bikes))
	require.Len(t, bikes, 2)
	assert.Equal(t, "one", bikes[0].Name)
	assert.Equal(t, "two", bikes[1].Name)
}

func TestDeleteBikeByKey(t *testing.T) {
	r, repo := newTestRouter(t)

	created, err := repo.Create(context.Background(), validBike())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/bikes/"+created.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Bike    Bike   `json:"bike"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bike deleted successfully", resp.Message)
	assert.Equal(t, created.ID, resp.Bike.ID)

	bikes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bikes)
}

func TestDeleteBikeByKeyNotFoundEchoesContext(t *testing.T) {
	r, repo := newTestRouter(t)

	for i := 0; i < 2; i++ {
		b := validBike()
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/bikes/no-such-key", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Bike not found","key":"no-such-key","inventoryLength":2}`, rec.Body.String())
}

func TestDeleteBikeByNameDecodesPath(t *testing.T) {
	r, repo := newTestRouter(t)

	b := validBike()
	b.Name = "Trail Blazer 29"
	_, err := repo.Create(context.Background(), b)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/bikes/name/Trail%20Blazer%2029", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	bikes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bikes)
}

func TestDeleteBikeByNameNotFoundEchoesContext(t *testing.T) {
	r, repo := newTestRouter(t)

	_, err := repo.Create(context.Background(), validBike())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/bikes/name/Ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Bike not found","name":"Ghost","inventoryLength":1}`, rec.Body.String())
}
