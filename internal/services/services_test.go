package services

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"kycadmin/internal/activity"
	"kycadmin/internal/analytics"
	"kycadmin/internal/business"
	"kycadmin/internal/kycapi"
	"kycadmin/internal/models"
	"kycadmin/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake upstream API ---

type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	status   map[string]int
	bodies   map[string]string
	uploads  []url.Values
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		status: map[string]int{},
		bodies: map[string]string{
			"GET /api/users":                `[{"userVerificationStatus":"VERIFIED"},{"userVerificationStatus":"VERIFIED"},{"userVerificationStatus":"COMPLETED"}]`,
			"GET /api/profiles/pending":     `{"pp_saisie":[{}],"pm_saisie":[{}]}`,
			"GET /api/matching/pending":     `{"pp_profiles":[{}],"pm_profiles":[]}`,
			"GET /api/screening/pp/pending": `[]`,
			"GET /api/screening/pm/pending": `[{}]`,
			"GET /api/business-activities":  `[]`,
		},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests = append(f.requests, key)
	status, hasStatus := f.status[key]
	body := f.bodies[key]
	if r.URL.Path == "/api/upload-files" && r.ParseMultipartForm(1<<20) == nil {
		values := url.Values{}
		for k, v := range r.MultipartForm.Value {
			values[k] = v
		}
		for _, fh := range r.MultipartForm.File["files"] {
			values.Add("file", fh.Filename)
		}
		f.uploads = append(f.uploads, values)
	}
	f.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range f.requests {
		if k == key {
			n++
		}
	}
	return n
}

func (f *fakeAPI) set(key string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[key] = status
}

// --- Harness ---

func newTestRouter(t *testing.T, api *fakeAPI) http.Handler {
	t.Helper()

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	client, err := kycapi.NewClient(models.APIConfiguration{BaseURL: server.URL + "/api"})
	require.NoError(t, err)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	drafts, err := upload.NewDrafts(t.TempDir(), time.Hour)
	require.NoError(t, err)

	catalog := business.NewCatalog(client)

	r := chi.NewRouter()
	r.Mount("/analytics", AnalyticsService{
		Dashboard: analytics.NewDashboard(analytics.NewAggregator(client)),
		Renderer:  renderer,
	}.Routes())
	r.Mount("/business", BusinessService{
		Catalog:  catalog,
		Manager:  business.Manager{API: client, Refresher: catalog},
		Renderer: renderer,
	}.Routes())
	r.Mount("/upload", UploadService{
		Drafts:        drafts,
		Submitter:     upload.Submitter{Uploader: client},
		Renderer:      renderer,
		MaxUploadSize: 10 << 20,
	}.Routes())
	r.Mount("/activity", ActivityService{ActivityLogger: activity.NoopLogger{}}.Routes())
	return r
}

func do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartUpload(t *testing.T, path string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, _ = part.Write([]byte(content))
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// --- Analytics ---

func TestAnalyticsPage_RendersCountersAndRates(t *testing.T) {
	router := newTestRouter(t, newFakeAPI())

	recorder := do(router, httptest.NewRequest(http.MethodGet, "/analytics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Total Users")
	assert.Contains(t, body, "<h3>3</h3><p>Total Users</p>")
	assert.Contains(t, body, "<h3>2</h3><p>Pending Profiles</p>")
	assert.Contains(t, body, "<span>67%</span>")
	assert.Contains(t, body, "<span>33%</span>")
	assert.NotContains(t, body, "Failed to fetch analytics")
}

func TestAnalyticsPage_OrchestrationFailureNotifies(t *testing.T) {
	api := newFakeAPI()
	api.bodies["GET /api/users"] = "not json"
	router := newTestRouter(t, api)

	recorder := do(router, httptest.NewRequest(http.MethodGet, "/analytics?refresh=1", nil))

	body := recorder.Body.String()
	assert.Contains(t, body, `class="flash error"`)
	assert.Contains(t, body, "Failed to fetch analytics")
	assert.Contains(t, body, "<span>0%</span>")
}

func TestAnalyticsJSON(t *testing.T) {
	api := newFakeAPI()
	server := httptest.NewServer(api)
	defer server.Close()
	client, err := kycapi.NewClient(models.APIConfiguration{BaseURL: server.URL + "/api"})
	require.NoError(t, err)

	service := AnalyticsService{Dashboard: analytics.NewDashboard(analytics.NewAggregator(client))}
	recorder := do(http.HandlerFunc(service.GetSnapshotJSON), httptest.NewRequest(http.MethodGet, "/api/analytics?refresh=1", nil))

	var response models.AnalyticsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, 3, response.TotalUsers)
	assert.Equal(t, 67, response.VerificationRate)
	assert.Equal(t, 33, response.CompletionRate)
	assert.False(t, response.Loading)
}

// --- Business ---

func TestBusinessList_EmptyState(t *testing.T) {
	router := newTestRouter(t, newFakeAPI())

	recorder := do(router, httptest.NewRequest(http.MethodGet, "/business", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "No business activities found. Add your first activity!")
}

func TestBusinessCreate_SuccessRefreshesOnce(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	recorder := do(router, postForm("/business", url.Values{"name": {"Retail"}, "icon": {"🏪"}}))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Business activity created successfully")
	assert.NotContains(t, recorder.Body.String(), `role="dialog"`)
	assert.Equal(t, 1, api.count("POST /api/business-activities"))
	assert.Equal(t, 1, api.count("GET /api/business-activities"))
}

func TestBusinessCreate_FailureKeepsModalOpen(t *testing.T) {
	api := newFakeAPI()
	api.set("POST /api/business-activities", http.StatusInternalServerError)
	router := newTestRouter(t, api)

	recorder := do(router, postForm("/business", url.Values{"name": {"Retail"}, "icon": {"🏪"}}))

	body := recorder.Body.String()
	assert.Contains(t, body, "Failed to save business activity")
	assert.Contains(t, body, `role="dialog"`)
	assert.Contains(t, body, `value="Retail"`)
	assert.Equal(t, 0, api.count("GET /api/business-activities"))
}

func TestBusinessCreate_BlankNameSendsNothing(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	recorder := do(router, postForm("/business", url.Values{"name": {"  "}, "icon": {"🏪"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, 0, api.count("POST /api/business-activities"))
	assert.NotContains(t, recorder.Body.String(), `class="flash`)
}

func TestBusinessUpdate_PutsToID(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	recorder := do(router, postForm("/business/42", url.Values{"name": {"Banking"}, "icon": {"🏦"}}))

	assert.Contains(t, recorder.Body.String(), "Business activity updated successfully")
	assert.Equal(t, 1, api.count("PUT /api/business-activities/42"))
}

func TestBusinessEdit_PrefillsModal(t *testing.T) {
	api := newFakeAPI()
	api.bodies["GET /api/business-activities"] = `[{"id":42,"name":"Banking","icon":"🏦"}]`
	router := newTestRouter(t, api)

	recorder := do(router, httptest.NewRequest(http.MethodGet, "/business/42/edit", nil))

	body := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, body, "Edit Business Activity")
	assert.Contains(t, body, `value="Banking"`)
	assert.Contains(t, body, `action="/business/42"`)

	missing := do(router, httptest.NewRequest(http.MethodGet, "/business/7/edit", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestBusinessDelete_Confirmation(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	page := do(router, httptest.NewRequest(http.MethodGet, "/business/9/delete", nil))
	assert.Contains(t, page.Body.String(), "Are you sure you want to delete this business activity?")
	assert.Equal(t, 0, api.count("DELETE /api/business-activities/9"))

	declined := do(router, postForm("/business/9/delete", url.Values{"confirm": {"no"}}))
	assert.NotContains(t, declined.Body.String(), `class="flash`)
	assert.Equal(t, 0, api.count("DELETE /api/business-activities/9"))

	accepted := do(router, postForm("/business/9/delete", url.Values{"confirm": {"yes"}}))
	assert.Contains(t, accepted.Body.String(), "Business activity deleted successfully")
	assert.Equal(t, 1, api.count("DELETE /api/business-activities/9"))
	assert.Equal(t, 1, api.count("GET /api/business-activities"))
}

// --- Upload ---

func TestUploadForm_RendersGuidance(t *testing.T) {
	router := newTestRouter(t, newFakeAPI())

	body := do(router, httptest.NewRequest(http.MethodGet, "/upload", nil)).Body.String()

	assert.Contains(t, body, `accept=".pdf,.jpg,.jpeg,.png,.doc,.docx"`)
	assert.Contains(t, body, "Maximum file size: 10MB per file")
	assert.Contains(t, body, "PM (Professional Merchant)")
	assert.Contains(t, body, `value="upload" disabled`)
}

func TestUpload_SuccessClearsForm(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	req := multipartUpload(t, "/upload",
		map[string]string{"user_type": "PP", "userid": "user-9", "bucket_name": "kyc-docs", "action": "upload"},
		map[string]string{"passport.pdf": "pdf-bytes"})
	body := do(router, req).Body.String()

	assert.Contains(t, body, "Files uploaded successfully")
	assert.NotContains(t, body, `value="user-9"`)
	require.Len(t, api.uploads, 1)
	assert.Equal(t, "PP", api.uploads[0].Get("user_type"))
	assert.Equal(t, "user-9", api.uploads[0].Get("userid"))
	assert.Equal(t, "kyc-docs", api.uploads[0].Get("bucket_name"))
	assert.Equal(t, "passport.pdf", api.uploads[0].Get("file"))
}

func TestUpload_FailurePreservesForm(t *testing.T) {
	api := newFakeAPI()
	api.set("POST /api/upload-files", http.StatusInternalServerError)
	router := newTestRouter(t, api)

	req := multipartUpload(t, "/upload",
		map[string]string{"user_type": "PM", "userid": "m-1", "bucket_name": "b", "action": "upload"},
		map[string]string{"id.png": "png"})
	body := do(router, req).Body.String()

	assert.Contains(t, body, "Failed to upload files")
	assert.Contains(t, body, `value="m-1"`)
	assert.Contains(t, body, "id.png")
	assert.Contains(t, body, "(0.00 MB)")
}

func TestUpload_MissingFieldsAndFiles(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	noFiles := multipartUpload(t, "/upload",
		map[string]string{"user_type": "PM", "userid": "m-1", "bucket_name": "b"}, nil)
	assert.Contains(t, do(router, noFiles).Body.String(), "Please select files to upload")

	noFields := multipartUpload(t, "/upload",
		map[string]string{"user_type": "XX", "userid": "m-1", "bucket_name": "b"},
		map[string]string{"a.pdf": "x"})
	assert.Contains(t, do(router, noFields).Body.String(), "Please fill in all required fields")

	assert.Equal(t, 0, api.count("POST /api/upload-files"))
}

func TestUpload_AttachOnlyDoesNotSubmit(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	req := multipartUpload(t, "/upload",
		map[string]string{"user_type": "PP", "userid": "u", "bucket_name": "b", "action": "select"},
		map[string]string{"a.pdf": "x"})
	body := do(router, req).Body.String()

	assert.Contains(t, body, "Selected Files:")
	assert.NotContains(t, body, `value="upload" disabled`)
	assert.Equal(t, 0, api.count("POST /api/upload-files"))
}

var draftIDPattern = regexp.MustCompile(`/upload\?draft=([0-9a-f-]{36})`)

func TestUpload_UnstorableSelectionDoesNotSendPreviousFiles(t *testing.T) {
	api := newFakeAPI()
	router := newTestRouter(t, api)

	fields := map[string]string{"user_type": "PP", "userid": "u-1", "bucket_name": "b", "action": "select"}
	attached := do(router, multipartUpload(t, "/upload", fields, map[string]string{"old.pdf": "old"})).Body.String()
	match := draftIDPattern.FindStringSubmatch(attached)
	require.Len(t, match, 2)

	// A file name longer than the filesystem allows cannot be spooled.
	tooLong := strings.Repeat("n", 300) + ".pdf"
	fields["action"] = "upload"
	body := do(router, multipartUpload(t, "/upload?draft="+match[1], fields, map[string]string{tooLong: "new"})).Body.String()

	assert.Equal(t, 0, api.count("POST /api/upload-files"))
	assert.Equal(t, 1, strings.Count(body, `class="flash`))
	assert.Contains(t, body, "Failed to upload files")
	assert.NotContains(t, body, "Files uploaded successfully")
	assert.Contains(t, body, "old.pdf")
}

// --- Activity ---

func TestActivitySearch(t *testing.T) {
	router := newTestRouter(t, newFakeAPI())

	recorder := do(router, httptest.NewRequest(http.MethodGet, "/activity?action=create&unknown=1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}
