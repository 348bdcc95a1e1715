package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/extract"
	"github.com/entityentitled101/loreforge/pkg/lore"
	"github.com/entityentitled101/loreforge/pkg/store"
)

// memPersister backs a real store with in-memory persistence.
type memPersister struct {
	characters []lore.Character
	locations  []lore.Location
}

func (m *memPersister) Load() ([]lore.Character, []lore.Location, error) {
	return m.characters, m.locations, nil
}

func (m *memPersister) Save(characters []lore.Character, locations []lore.Location) error {
	m.characters = characters
	m.locations = locations
	return nil
}

// fakeExtractor returns a canned batch or error.
type fakeExtractor struct {
	result *lore.ExtractionResult
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, rawText string) (*lore.ExtractionResult, error) {
	return f.result, f.err
}

func newTestRouter(t *testing.T, extractor extract.Extractor) http.Handler {
	t.Helper()
	st, err := store.New(&memPersister{
		characters: lore.SeedCharacters(),
		locations:  lore.SeedLocations(),
	}, zap.NewNop())
	require.NoError(t, err)

	metrics := NewMetrics(prometheus.NewRegistry())
	return Router(NewServer(st, extractor, metrics, zap.NewNop()))
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleHealth(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestListCharacters(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/characters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var characters []lore.Character
	require.NoError(t, json.Unmarshal(data, &characters))
	require.Len(t, characters, 2)
	assert.Equal(t, lore.CoreCharacterID, characters[0].ID)
}

func TestGetCharacter_NotFound(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodGet, "/api/v1/characters/char_missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "not found")
}

func TestCreateCharacter(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/characters",
		`{"name": "Old Mu", "role": "Antagonist"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created lore.Character
	require.NoError(t, json.Unmarshal(data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Old Mu", created.Name)
	assert.Greater(t, created.LastUpdated, int64(0))
}

func TestCreateCharacter_BadJSON(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/characters", "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestUpdateCharacter(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodPatch, "/api/v1/characters/char_002",
		`{"description": "Reformed."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var updated lore.Character
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "char_002", updated.ID)
	assert.Equal(t, "Reformed.", updated.Description)
	assert.Equal(t, "Unit 734", updated.Name)
}

func TestUpdateCharacter_NotFound(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, _ := doRequest(t, h, http.MethodPatch, "/api/v1/characters/char_missing", `{"name": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCharacter(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, _ := doRequest(t, h, http.MethodDelete, "/api/v1/characters/char_002", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodDelete, "/api/v1/characters/char_002", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndUpdateLocation(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/locations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created lore.Location
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "NEW SECTOR", created.Name)

	rec, resp = doRequest(t, h, http.MethodPatch, "/api/v1/locations/"+created.ID,
		`{"name": "Glass Desert", "type": "Wasteland"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	var updated lore.Location
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Glass Desert", updated.Name)
}

func TestImport_Success(t *testing.T) {
	h := newTestRouter(t, &fakeExtractor{
		result: &lore.ExtractionResult{
			Characters: []lore.CandidateCharacter{
				{Name: "PUU returns", Role: "Supporting"},
				{Name: "Old Mu", Role: "Antagonist"},
			},
			Locations: []lore.CandidateLocation{
				{Name: "Neo-Kowloon", Population: "13,000,000"},
			},
			AnalysisLog: "Mapped PUU to core.",
		},
	})

	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/import", "chapter text")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var imported ImportResponse
	require.NoError(t, json.Unmarshal(data, &imported))
	assert.True(t, imported.Summary.CoreMerged)
	assert.Equal(t, 1, imported.Summary.PlaceholdersReplaced)
	assert.Equal(t, 1, imported.Summary.LocationsMerged)
	assert.Equal(t, "Mapped PUU to core.", imported.AnalysisLog)

	// The merge actually reached the store.
	rec, resp = doRequest(t, h, http.MethodGet, "/api/v1/characters/"+lore.CoreCharacterID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	var core lore.Character
	require.NoError(t, json.Unmarshal(data, &core))
	assert.Equal(t, "PUU returns", core.Name)
	assert.Equal(t, lore.RoleProtagonist, core.Role)
}

func TestImport_ExtractionFailureLeavesStoreUntouched(t *testing.T) {
	h := newTestRouter(t, &fakeExtractor{err: errors.New("model unreachable")})

	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/import", "chapter text")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, resp.Success)

	rec, resp = doRequest(t, h, http.MethodGet, "/api/v1/characters/"+lore.CoreCharacterID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var core lore.Character
	require.NoError(t, json.Unmarshal(data, &core))
	assert.Equal(t, "ELARA VANCE", core.Name)
}

func TestImport_EmptyBody(t *testing.T) {
	h := newTestRouter(t, &fakeExtractor{result: &lore.ExtractionResult{}})
	rec, _ := doRequest(t, h, http.MethodPost, "/api/v1/import", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_NoExtractorConfigured(t *testing.T) {
	h := newTestRouter(t, nil)
	rec, resp := doRequest(t, h, http.MethodPost, "/api/v1/import", "chapter text")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, resp.Error, "unavailable")
}
