package handlers_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/gateway"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/xlsx"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/handlers"
)

// browser replays the session cookie like a real client.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, gw *fakeGateway) *browser {
	t.Helper()
	log, _ := test.NewNullLogger()
	h := handlers.New(gw, handlers.Options{
		NotifyTTL: time.Minute,
		Metrics:   true,
		Logger:    log,
	})
	return &browser{t: t, h: h.Routes()}
}

func (b *browser) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		b.cookies = cs
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, nil, "")
}

func (b *browser) put(target string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPut, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (b *browser) upload(field, filename string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if data != nil {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(b.t, err)
		_, err = fw.Write(data)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, mw.Close())
	return b.do(http.MethodPost, "/employees", &body, mw.FormDataContentType())
}

func row(id string) string { return `id="employee-` + id + `"` }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDashboardPage(t *testing.T) {
	b := newBrowser(t, newFakeGateway(0))
	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "gestionEmpl")
	assert.Contains(t, body, "User Growth")
	assert.Contains(t, body, "Employee Distribution")
	assert.Contains(t, body, "stroke-dasharray")
	assert.Contains(t, body, ">Projects</a>")
	assert.NotEmpty(t, b.cookies, "session cookie")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestUnknownPathIsNotFound(t *testing.T) {
	b := newBrowser(t, newFakeGateway(0))
	assert.Equal(t, http.StatusNotFound, b.get("/nope").Code)
}

func TestEmployeesPageShowsFirstPage(t *testing.T) {
	gw := newFakeGateway(11)
	b := newBrowser(t, gw)

	rec := b.get("/employees")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, row("1"))
	assert.Contains(t, body, row("10"))
	assert.NotContains(t, body, row("11"))
	assert.Contains(t, body, "page 1 of 2")
	assert.Equal(t, []string{"list"}, gw.Calls())
}

func TestTablePagingAndSearch(t *testing.T) {
	gw := newFakeGateway(11)
	b := newBrowser(t, gw)
	b.get("/employees")

	body := b.get("/employees/table?page=2").Body.String()
	assert.Contains(t, body, row("11"))
	assert.NotContains(t, body, row("1"))
	assert.Contains(t, body, `<td class="px-4 py-2">11</td>`)

	body = b.get("/employees/table?q=SURNAME1").Body.String()
	assert.Contains(t, body, row("1"))
	assert.Contains(t, body, row("10"))
	assert.Contains(t, body, row("11"))
	assert.NotContains(t, body, row("2"))

	body = b.get("/employees/table?q=nobody").Body.String()
	assert.Contains(t, body, "No employees found.")

	// paging and searching never reach the gateway
	assert.Equal(t, []string{"list"}, gw.Calls())
}

func TestInlineEditSave(t *testing.T) {
	gw := newFakeGateway(3)
	b := newBrowser(t, gw)
	b.get("/employees")

	body := b.get("/employees/2/edit").Body.String()
	assert.Contains(t, body, `data-editing="true"`)
	assert.Contains(t, body, `name="surname" value="Surname2"`)

	rec := b.put("/employees/2", url.Values{
		"name":            {"Name2"},
		"surname":         {"Changed"},
		"id_number":       {""},
		"birth_date":      {"01.02.1990"},
		"sex":             {"F"},
		"nationality":     {"DEU"},
		"personal_number": {"P-2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Employee updated!")
	assert.Contains(t, body, `hx-swap-oob="true"`)
	assert.Contains(t, body, ">Changed</td>")
	assert.NotContains(t, body, `data-editing="true"`)
	assert.Equal(t, []string{"list", "edit 2"}, gw.Calls())
}

func TestInlineEditCancelLeavesGatewayUntouched(t *testing.T) {
	gw := newFakeGateway(3)
	b := newBrowser(t, gw)
	b.get("/employees")
	b.get("/employees/1/edit")

	body := b.get("/employees/1/row").Body.String()
	assert.NotContains(t, body, `data-editing="true"`)
	assert.Contains(t, body, ">Surname1</td>")
	assert.Equal(t, []string{"list"}, gw.Calls())
}

func TestSecondEditIsRejectedWhileFirstIsOpen(t *testing.T) {
	b := newBrowser(t, newFakeGateway(3))
	b.get("/employees")
	b.get("/employees/1/edit")

	body := b.get("/employees/2/edit").Body.String()
	assert.Contains(t, body, "Finish editing the current row first.")
	assert.Contains(t, body, `name="surname" value="Surname1"`)
	assert.NotContains(t, body, `name="surname" value="Surname2"`)
}

func TestFailedSaveKeepsDraft(t *testing.T) {
	gw := newFakeGateway(2)
	b := newBrowser(t, gw)
	b.get("/employees")
	b.get("/employees/1/edit")

	gw.fail(&gateway.APIError{Status: http.StatusBadRequest, Detail: "No data provided for update"})
	body := b.put("/employees/1", url.Values{"surname": {"Draft"}}).Body.String()
	assert.Contains(t, body, "No data provided for update")
	assert.Contains(t, body, `data-editing="true"`)
	assert.Contains(t, body, `name="surname" value="Draft"`)
}

func TestDeleteClampsPage(t *testing.T) {
	gw := newFakeGateway(11)
	b := newBrowser(t, gw)
	b.get("/employees")
	b.get("/employees/table?page=2")

	rec := b.do(http.MethodDelete, "/employees/11", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Employee deleted!")
	assert.Contains(t, body, row("1"))
	assert.Contains(t, body, row("10"))
	assert.NotContains(t, body, "page 1 of")
	assert.Equal(t, []string{"list", "delete 11"}, gw.Calls())
}

func TestDeleteFailureKeepsRow(t *testing.T) {
	gw := newFakeGateway(2)
	b := newBrowser(t, gw)
	b.get("/employees")

	gw.fail(&gateway.APIError{Status: http.StatusInternalServerError})
	body := b.do(http.MethodDelete, "/employees/2", nil, "").Body.String()
	assert.Contains(t, body, "Delete failed")
	assert.Contains(t, body, row("2"))
}

func TestAddRequiresFile(t *testing.T) {
	gw := newFakeGateway(1)
	b := newBrowser(t, gw)
	b.get("/employees")

	body := b.upload("file", "", nil).Body.String()
	assert.Contains(t, body, "Please upload an ID card image.")
	assert.Equal(t, []string{"list"}, gw.Calls())
}

func TestAddUploadsScan(t *testing.T) {
	gw := newFakeGateway(1)
	b := newBrowser(t, gw)
	b.get("/employees")

	body := b.upload("file", "card.png", pngBytes(t)).Body.String()
	assert.Contains(t, body, "Employee added from scan!")
	assert.Contains(t, body, row("2"))
	assert.Equal(t, []string{"list", "add image/png"}, gw.Calls())
}

func TestAddRejectsNonImage(t *testing.T) {
	gw := newFakeGateway(0)
	b := newBrowser(t, gw)
	b.get("/employees")

	body := b.upload("file", "notes.txt", []byte("plain text, not a scan")).Body.String()
	assert.Contains(t, body, "Unsupported file type")
	assert.Equal(t, []string{"list"}, gw.Calls())
}

func TestEditPage(t *testing.T) {
	gw := newFakeGateway(2)
	b := newBrowser(t, gw)

	rec := b.get("/employees/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Surname2"`)

	rec = b.get("/employees/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee not found")
}

func TestEditPageSaveRedirects(t *testing.T) {
	gw := newFakeGateway(2)
	b := newBrowser(t, gw)
	b.get("/employees/1")

	rec := b.put("/employees/1?from=page", url.Values{"nationality": {"FRA"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/employees", rec.Header().Get("HX-Redirect"))

	// the success toast is shown on the page the browser lands on
	body := b.get("/employees").Body.String()
	assert.Contains(t, body, "Employee updated!")
	assert.Contains(t, body, ">FRA</td>")
}

func TestQuestionnaireDownload(t *testing.T) {
	b := newBrowser(t, newFakeGateway(1))
	b.get("/employees")

	rec := b.get("/employees/1/questionnaire.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Surname1_Name1.pdf`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	assert.Equal(t, http.StatusNotFound, b.get("/employees/42/questionnaire.pdf").Code)
}

func TestQuestionnaireFilenameIsEncoded(t *testing.T) {
	gw := newFakeGateway(0)
	gw.put(domain.Employee{ID: "1", Name: `Jo"n`, Surname: "Müller"})
	b := newBrowser(t, gw)
	b.get("/employees")

	rec := b.get("/employees/1/questionnaire.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `Müller_Jo"n.pdf`, params["filename"])
}

func TestSpreadsheetExport(t *testing.T) {
	b := newBrowser(t, newFakeGateway(3))
	rec := b.get("/employees/export.xlsx?q=name2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsx.ContentType, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestListFailureShowsEmptyTable(t *testing.T) {
	gw := newFakeGateway(2)
	gw.fail(&gateway.APIError{Status: http.StatusBadGateway})
	b := newBrowser(t, gw)

	body := b.get("/employees").Body.String()
	assert.Contains(t, body, "No employees found.")
	assert.Contains(t, body, "Failed to fetch employees")
}

func TestSessionsAreIsolated(t *testing.T) {
	gw := newFakeGateway(3)
	h := handlers.New(gw, handlers.Options{Logger: logrus.New()}).Routes()
	alice := &browser{t: t, h: h}
	bob := &browser{t: t, h: h}

	alice.get("/employees")
	alice.get("/employees/1/edit")
	bob.get("/employees")

	body := bob.get("/employees/table").Body.String()
	assert.NotContains(t, body, `data-editing="true"`)
	body = alice.get("/employees/table").Body.String()
	assert.Contains(t, body, `data-editing="true"`)
}

func TestHealthAndMetrics(t *testing.T) {
	b := newBrowser(t, newFakeGateway(0))
	rec := b.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = b.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gestionempl_http_requests_total")
}

func TestRequestIDIsPropagated(t *testing.T) {
	b := newBrowser(t, newFakeGateway(0))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestDraftDroppedWhenRecordDisappears(t *testing.T) {
	gw := newFakeGateway(3)
	b := newBrowser(t, gw)
	b.get("/employees")
	require.Contains(t, b.get("/employees/2/edit").Body.String(), `id="employee-2" class="bg-blue-50/60" data-editing="true"`)

	gw.remove("2")
	body := b.get("/employees").Body.String()
	assert.NotContains(t, body, row("2"))

	body = b.get("/employees/3/edit").Body.String()
	assert.Contains(t, body, `id="employee-3" class="bg-blue-50/60" data-editing="true"`)
	assert.NotContains(t, body, "Finish editing the current row first.")
}

func TestDraftDroppedWhenListFails(t *testing.T) {
	gw := newFakeGateway(3)
	b := newBrowser(t, gw)
	b.get("/employees")
	b.get("/employees/2/edit")

	gw.fail(errors.New("connection refused"))
	b.get("/employees")
	gw.fail(nil)
	b.get("/employees")

	body := b.get("/employees/2/edit").Body.String()
	assert.Contains(t, body, `id="employee-2" class="bg-blue-50/60" data-editing="true"`)
	body = b.get("/employees/2/row").Body.String()
	assert.NotContains(t, body, `data-editing="true"`)
	body = b.get("/employees/3/edit").Body.String()
	assert.Contains(t, body, `id="employee-3" class="bg-blue-50/60" data-editing="true"`)
	assert.NotContains(t, body, "Finish editing the current row first.")
}

func TestSearchInputIsTrimmed(t *testing.T) {
	b := newBrowser(t, newFakeGateway(11))
	b.get("/employees")

	body := b.get("/employees/table?q=" + url.QueryEscape(" Surname11 ")).Body.String()
	assert.Contains(t, body, row("11"))
	assert.NotContains(t, body, row("1"))
}
