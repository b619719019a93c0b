package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/media"
	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/repository/memory"
	"github.com/iliyamo/property-backoffice/internal/service"
	"github.com/iliyamo/property-backoffice/internal/validation"
)

type recorder struct {
	sent []notify.Message
	err  error
}

func (r *recorder) Notify(_ context.Context, m notify.Message) error {
	r.sent = append(r.sent, m)
	return r.err
}

func quiet() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	e.Logger.SetOutput(io.Discard)
	return e
}

// call runs h against a JSON request.  Path params are given as
// name, value pairs.
func call(t *testing.T, e *echo.Echo, h echo.HandlerFunc, method, target string, body any, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func oakview() echo.Map {
	return echo.Map{"name": "Oakview", "size": "1000 sqft", "type": "House", "rentAmount": 500}
}

func TestPropertyCreate(t *testing.T) {
	e := newEcho()
	st := memory.NewStore()
	h := NewPropertyHandler(st.Properties, media.Disabled{})

	rec := call(t, e, h.Create, http.MethodPost, "/api/properties", oakview())
	require.Equal(t, http.StatusCreated, rec.Code)

	var p model.Property
	decode(t, rec, &p)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Oakview", p.Name)
	assert.False(t, p.IsRented)
}

func TestPropertyCreateValidation(t *testing.T) {
	e := newEcho()
	h := NewPropertyHandler(memory.NewStore().Properties, media.Disabled{})

	body := oakview()
	body["size"] = "huge"
	rec := call(t, e, h.Create, http.MethodPost, "/api/properties", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string                  `json:"error"`
		Details []validation.FieldError `json:"details"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "size", resp.Details[0].Field)
}

func TestPropertyListEnvelope(t *testing.T) {
	e := newEcho()
	st := memory.NewStore()
	h := NewPropertyHandler(st.Properties, media.Disabled{})
	for _, name := range []string{"Oakview", "Elm Court"} {
		body := oakview()
		body["name"] = name
		require.Equal(t, http.StatusCreated, call(t, e, h.Create, http.MethodPost, "/api/properties", body).Code)
	}

	rec := call(t, e, h.List, http.MethodGet, "/api/properties?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse[model.Property]
	decode(t, rec, &resp)
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.Limit)

	rec = call(t, e, h.List, http.MethodGet, "/api/properties?rented=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertyEmptyListIsArray(t *testing.T) {
	e := newEcho()
	h := NewPropertyHandler(memory.NewStore().Properties, media.Disabled{})

	rec := call(t, e, h.Available, http.MethodGet, "/api/properties/available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestPropertyGetAndDelete(t *testing.T) {
	e := newEcho()
	st := memory.NewStore()
	h := NewPropertyHandler(st.Properties, media.Disabled{})

	rec := call(t, e, h.Get, http.MethodGet, "/api/properties/nope", nil, "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "property not found")

	p := &model.Property{Name: "Oakview", Size: "1000 sqft", Type: model.PropertyHouse}
	require.NoError(t, st.Properties.Create(context.Background(), p))
	rec = call(t, e, h.Delete, http.MethodDelete, "/api/properties/"+p.ID, nil, "id", p.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "property deleted successfully")

	_, err := st.Properties.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

var pngHeader = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func multipartPhoto(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "front.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func upload(t *testing.T, e *echo.Echo, h echo.HandlerFunc, target, field string, content []byte, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartPhoto(t, field, content)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestUpload(t *testing.T) {
	e := newEcho()
	var got []byte
	up := media.UploadFunc(func(_ context.Context, name string, r io.Reader) (string, error) {
		got, _ = io.ReadAll(r)
		return "https://res.cloudinary.com/demo/image/upload/properties/" + name, nil
	})
	h := NewPropertyHandler(memory.NewStore().Properties, up)

	rec := upload(t, e, h.Upload, "/api/upload", "photo", pngHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "properties/front.png")
	assert.Equal(t, pngHeader, got)
}

func TestUploadRejects(t *testing.T) {
	e := newEcho()
	h := NewPropertyHandler(memory.NewStore().Properties, media.Disabled{})

	rec := upload(t, e, h.Upload, "/api/upload", "file", pngHeader)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no image file provided")

	rec = upload(t, e, h.Upload, "/api/upload", "photo", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, e, h.Upload, "/api/upload", "photo", pngHeader)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUploadImageStoresURL(t *testing.T) {
	e := newEcho()
	st := memory.NewStore()
	p := &model.Property{Name: "Oakview", Size: "1000 sqft", Type: model.PropertyHouse}
	require.NoError(t, st.Properties.Create(context.Background(), p))
	up := media.UploadFunc(func(context.Context, string, io.Reader) (string, error) {
		return "https://img.example.com/oakview.png", nil
	})
	h := NewPropertyHandler(st.Properties, up)

	rec := upload(t, e, h.UploadImage, "/api/properties/"+p.ID+"/image", "photo", pngHeader, "id", p.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := st.Properties.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/oakview.png", stored.ImageURL)
}

// expiringRepo fails updates whose context deadline has passed.
type expiringRepo struct {
	repository.PropertyRepository
}

func (r expiringRepo) Update(ctx context.Context, p *model.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.PropertyRepository.Update(ctx, p)
}

func TestUploadImageSlowUploadStillStores(t *testing.T) {
	prev := storeTimeout
	storeTimeout = 50 * time.Millisecond
	t.Cleanup(func() { storeTimeout = prev })

	e := newEcho()
	st := memory.NewStore()
	p := &model.Property{Name: "Oakview", Size: "1000 sqft", Type: model.PropertyHouse}
	require.NoError(t, st.Properties.Create(context.Background(), p))
	up := media.UploadFunc(func(context.Context, string, io.Reader) (string, error) {
		time.Sleep(storeTimeout + 50*time.Millisecond)
		return "https://img.example.com/slow.png", nil
	})
	h := NewPropertyHandler(expiringRepo{st.Properties}, up)

	rec := upload(t, e, h.UploadImage, "/api/properties/"+p.ID+"/image", "photo", pngHeader, "id", p.ID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := st.Properties.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/slow.png", stored.ImageURL)
}

type world struct {
	store      *repository.Store
	notifier   *recorder
	property   *model.Property
	tenant     *model.Tenant
	contractor *model.Contractor
	request    *model.MaintenanceRequest
}

func seed(t *testing.T) world {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()

	p := &model.Property{Name: "Oakview", Size: "1000 sqft", Type: model.PropertyHouse, RentAmount: 500}
	require.NoError(t, st.Properties.Create(ctx, p))

	tn := model.NewTenant()
	tn.Name, tn.Phone, tn.Email, tn.PropertyID = "Jane Doe", "+15551234567", "jane@example.com", p.ID
	require.NoError(t, st.Tenants.Create(ctx, tn))

	c := model.NewContractor()
	c.Name, c.Email, c.Phone, c.Skills = "Bob Plumbing", "bob@example.com", "0123456789", []string{"plumbing"}
	require.NoError(t, st.Contractors.Create(ctx, c))

	r := model.NewMaintenanceRequest(time.Now().UTC())
	r.TenantID, r.PropertyID, r.Description = tn.ID, p.ID, "Leaking tap"
	require.NoError(t, st.Maintenance.Create(ctx, r))

	return world{store: st, notifier: &recorder{}, property: p, tenant: tn, contractor: c, request: r}
}

func (w world) tenants() *TenantHandler {
	return NewTenantHandler(w.store.Tenants, service.NewLeaseService(w.store, w.notifier, quiet()), NewRefs(w.store))
}

func (w world) maintenance() *MaintenanceHandler {
	return NewMaintenanceHandler(w.store.Maintenance, service.NewMaintenanceService(w.store, w.notifier, quiet()), NewRefs(w.store))
}

func TestTenantCreateMarksPropertyRented(t *testing.T) {
	e := newEcho()
	w := seed(t)
	spare := &model.Property{Name: "Birch House", Size: "80 sqm", Type: model.PropertyApartment}
	require.NoError(t, w.store.Properties.Create(context.Background(), spare))

	body := echo.Map{"name": "Sam Lee", "phoneNumber": "+15550001111", "email": "sam@example.com", "propertyId": spare.ID}
	rec := call(t, e, w.tenants().Create, http.MethodPost, "/api/tenants", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Values("Warning"))

	var tn model.Tenant
	decode(t, rec, &tn)
	assert.Equal(t, model.LeaseActive, tn.LeaseStatus)
	assert.Equal(t, model.PaymentDue, tn.PaymentStatus)

	p, err := w.store.Properties.GetByID(context.Background(), spare.ID)
	require.NoError(t, err)
	assert.True(t, p.IsRented)
}

func TestTenantCreateUnknownPropertyWarns(t *testing.T) {
	e := newEcho()
	w := seed(t)

	body := echo.Map{"name": "Sam Lee", "phoneNumber": "+15550001111", "email": "sam@example.com", "propertyId": "missing"}
	rec := call(t, e, w.tenants().Create, http.MethodPost, "/api/tenants", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, rec.Header().Values("Warning"), 1)
	assert.Contains(t, rec.Header().Get("Warning"), "could not be marked rented")
}

func TestTenantDuplicateEmail(t *testing.T) {
	e := newEcho()
	w := seed(t)

	body := echo.Map{"name": "Jane Again", "phoneNumber": "+15550001111", "email": "JANE@example.com", "propertyId": w.property.ID}
	rec := call(t, e, w.tenants().Create, http.MethodPost, "/api/tenants", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant with this email already exists")
}

type snapshot struct {
	property   *model.Property
	tenant     *model.Tenant
	contractor *model.Contractor
	request    *model.MaintenanceRequest
	counts     [4]int64
}

func (w world) snapshot(t *testing.T) snapshot {
	t.Helper()
	ctx := context.Background()
	var s snapshot
	var err error
	s.property, err = w.store.Properties.GetByID(ctx, w.property.ID)
	require.NoError(t, err)
	s.tenant, err = w.store.Tenants.GetByID(ctx, w.tenant.ID)
	require.NoError(t, err)
	s.contractor, err = w.store.Contractors.GetByID(ctx, w.contractor.ID)
	require.NoError(t, err)
	s.request, err = w.store.Maintenance.GetByID(ctx, w.request.ID)
	require.NoError(t, err)

	s.counts[0], err = w.store.Properties.Count(ctx, repository.PropertyFilter{})
	require.NoError(t, err)
	s.counts[1], err = w.store.Tenants.Count(ctx, repository.TenantFilter{})
	require.NoError(t, err)
	s.counts[2], err = w.store.Contractors.Count(ctx, repository.ContractorFilter{})
	require.NoError(t, err)
	s.counts[3], err = w.store.Maintenance.Count(ctx, repository.MaintenanceFilter{})
	require.NoError(t, err)
	return s
}

func TestTenantDeleteUnknown(t *testing.T) {
	e := newEcho()
	w := seed(t)
	before := w.snapshot(t)

	rec := call(t, e, w.tenants().Delete, http.MethodDelete, "/api/tenants/ghost", nil, "id", "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant not found")

	after := w.snapshot(t)
	assert.Equal(t, before, after)
	assert.Equal(t, [4]int64{1, 1, 1, 1}, after.counts)
}

func TestTenantReadsIncludeProperty(t *testing.T) {
	e := newEcho()
	w := seed(t)
	h := w.tenants()

	rec := call(t, e, h.Get, http.MethodGet, "/", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		ID         string `json:"id"`
		PropertyID string `json:"propertyId"`
		Property   *Ref   `json:"property"`
	}
	decode(t, rec, &got)
	assert.Equal(t, w.tenant.ID, got.ID)
	assert.Equal(t, w.property.ID, got.PropertyID)
	assert.Equal(t, &Ref{ID: w.property.ID, Name: "Oakview"}, got.Property)

	rec = call(t, e, h.List, http.MethodGet, "/api/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"property":{"id":"`+w.property.ID+`","name":"Oakview"}`)

	rec = call(t, e, h.Active, http.MethodGet, "/api/tenants/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Oakview"`)
}

func TestTenantDanglingPropertyOmitted(t *testing.T) {
	e := newEcho()
	w := seed(t)
	require.NoError(t, w.store.Properties.Delete(context.Background(), w.property.ID))

	rec := call(t, e, w.tenants().Get, http.MethodGet, "/", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"propertyId":"`+w.property.ID+`"`)
	assert.NotContains(t, rec.Body.String(), `"property":`)
}

func TestMaintenanceReadsIncludeReferences(t *testing.T) {
	e := newEcho()
	w := seed(t)
	h := w.maintenance()

	rec := call(t, e, h.Get, http.MethodGet, "/", nil, "id", w.request.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got MaintenanceView
	decode(t, rec, &got)
	assert.Equal(t, &Ref{ID: w.tenant.ID, Name: "Jane Doe"}, got.Tenant)
	assert.Equal(t, &Ref{ID: w.property.ID, Name: "Oakview"}, got.Property)
	assert.Nil(t, got.Contractor)

	rec = call(t, e, h.Assign, http.MethodPut, "/", echo.Map{"contractorId": w.contractor.ID}, "id", w.request.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, e, h.List, http.MethodGet, "/api/maintenance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list listResponse[MaintenanceView]
	decode(t, rec, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, &Ref{ID: w.contractor.ID, Name: "Bob Plumbing"}, list.Items[0].Contractor)
	assert.Equal(t, "Jane Doe", list.Items[0].Tenant.Name)
}

func TestNilRefsReturnsBareRecords(t *testing.T) {
	e := newEcho()
	w := seed(t)
	h := NewTenantHandler(w.store.Tenants, service.NewLeaseService(w.store, w.notifier, quiet()), nil)

	rec := call(t, e, h.Get, http.MethodGet, "/", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"property":`)
}

func TestTenantDecline(t *testing.T) {
	e := newEcho()
	w := seed(t)

	rec := call(t, e, w.tenants().Decline, http.MethodPatch, "/api/tenants/"+w.tenant.ID+"/decline", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message  string       `json:"message"`
		Tenant   model.Tenant `json:"tenant"`
		Warnings []string     `json:"warnings"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Lease declined successfully", resp.Message)
	assert.Equal(t, model.LeaseDeclined, resp.Tenant.LeaseStatus)
	assert.True(t, resp.Tenant.Declined)
	assert.NotNil(t, resp.Tenant.Lease.EndDate)
	assert.Empty(t, resp.Warnings)
	require.Len(t, w.notifier.sent, 1)
	assert.Equal(t, notify.ChannelSMS, w.notifier.sent[0].Channel)
}

func TestTenantDeclineNotifyFailure(t *testing.T) {
	e := newEcho()
	w := seed(t)
	w.notifier.err = fmt.Errorf("%w: 503", notify.ErrGateway)

	rec := call(t, e, w.tenants().Decline, http.MethodPatch, "/", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Values("Warning"))
	assert.Contains(t, rec.Body.String(), "failed")
}

func TestTenantEnd(t *testing.T) {
	e := newEcho()
	w := seed(t)

	rec := call(t, e, w.tenants().End, http.MethodPatch, "/", nil, "id", w.tenant.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lease ended successfully")
	assert.Contains(t, rec.Body.String(), `"leaseStatus":"Ended"`)
}

func TestMaintenanceAssign(t *testing.T) {
	e := newEcho()
	w := seed(t)

	rec := call(t, e, w.maintenance().Assign, http.MethodPut, "/",
		echo.Map{"contractorId": w.contractor.ID}, "id", w.request.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string                   `json:"message"`
		Data    model.MaintenanceRequest `json:"data"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Contractor assigned successfully", resp.Message)
	assert.Equal(t, model.MaintenanceInProgress, resp.Data.Status)
	assert.Equal(t, w.contractor.ID, resp.Data.ContractorID)
	assert.NotNil(t, resp.Data.AssignmentDate)
	assert.Len(t, w.notifier.sent, 2)
}

func TestMaintenanceAssignErrors(t *testing.T) {
	e := newEcho()
	w := seed(t)
	h := w.maintenance()

	rec := call(t, e, h.Assign, http.MethodPut, "/", echo.Map{}, "id", w.request.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "contractorId is required")

	rec = call(t, e, h.Assign, http.MethodPut, "/", echo.Map{"contractorId": "ghost"}, "id", w.request.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "contractor not found")

	rec = call(t, e, h.Assign, http.MethodPut, "/", echo.Map{"contractorId": w.contractor.ID}, "id", "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "maintenance request not found")
}

func TestContractorListFilters(t *testing.T) {
	e := newEcho()
	w := seed(t)
	h := NewContractorHandler(w.store.Contractors)

	rec := call(t, e, h.List, http.MethodGet, "/api/contractors?skill=plumbing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse[model.Contractor]
	decode(t, rec, &resp)
	assert.EqualValues(t, 1, resp.Total)

	rec = call(t, e, h.List, http.MethodGet, "/api/contractors?skill=roofing", nil)
	decode(t, rec, &resp)
	assert.EqualValues(t, 0, resp.Total)
}

func TestStats(t *testing.T) {
	e := newEcho()
	w := seed(t)
	require.NoError(t, w.store.Properties.SetRented(context.Background(), w.property.ID, true))
	h := NewStatsHandler(w.store)

	rec := call(t, e, h.Counts, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var s Stats
	decode(t, rec, &s)
	assert.Equal(t, Stats{
		TotalProperties:    1,
		RentedProperties:   1,
		Tenants:            1,
		TotalMaintenance:   1,
		PendingMaintenance: 1,
	}, s)
}

func TestRespondErrorHidesInternals(t *testing.T) {
	e := newEcho()
	rec := call(t, e, func(c echo.Context) error {
		return respondError(c, errors.New("dial tcp 10.0.0.5:3306: refused"), "property")
	}, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
