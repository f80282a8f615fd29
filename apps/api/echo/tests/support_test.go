package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
)

func Test_supportAPI_auth(t *testing.T) {
	intruder := core.Principal{ID: 66, Username: "mallory", Roles: []string{"WIZARD"}}

	tests := []httpTest{
		{name: "no token", method: http.MethodGet, path: "/v1/supports", wantCode: http.StatusUnauthorized},
		{name: "garbage token", method: http.MethodGet, path: "/v1/supports", token: "lol", wantCode: http.StatusUnauthorized},
		{name: "unknown role", method: http.MethodGet, path: "/v1/supports", token: getToken(t, intruder), wantCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}
}

func Test_supportAPI_create(t *testing.T) {
	body := marchallObj(t, support.NewSupport{Title: "Algebra 101", FileURL: "http://files.test/algebra.pdf"})

	tests := []httpTest{
		{name: "teacher creates", method: http.MethodPost, path: "/v1/supports", body: body, token: getToken(t, teacher), wantCode: http.StatusCreated},
		{name: "dean cannot create", method: http.MethodPost, path: "/v1/supports", body: body, token: getToken(t, dean), wantCode: http.StatusForbidden},
		{name: "student cannot create", method: http.MethodPost, path: "/v1/supports", body: body, token: getToken(t, student), wantCode: http.StatusForbidden},
		{
			name: "missing file_url", method: http.MethodPost, path: "/v1/supports",
			body: marchallObj(t, support.NewSupport{Title: "No file"}), token: getToken(t, teacher), wantCode: http.StatusBadRequest,
		},
		{
			name: "bad file_url", method: http.MethodPost, path: "/v1/supports",
			body: marchallObj(t, support.NewSupport{Title: "Bad file", FileURL: "not-a-url"}), token: getToken(t, teacher), wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusCreated {
				sup := decodeSupport(t, rec)
				assert.Equal(t, support.StatusDraft, sup.Status)
				assert.Equal(t, teacher.ID, sup.OwnerID)
				assert.NotEmpty(t, sup.ID)
			}
		})
	}
}

func Test_supportAPI_retrieve(t *testing.T) {
	sup := createSupport(t, supRepo, "Retrieve me", teacher.ID, support.StatusDraft)

	tests := []httpTest{
		{name: "found", method: http.MethodGet, path: "/v1/supports/" + sup.ID, token: getToken(t, student), wantCode: http.StatusOK},
		{name: "not found", method: http.MethodGet, path: "/v1/supports/unknown-id", token: getToken(t, student), wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}
}

func Test_supportAPI_queryPending(t *testing.T) {
	createSupport(t, supRepo, "Pending review", teacher.ID, support.StatusSubmitted)

	tests := []httpTest{
		{name: "dean", method: http.MethodGet, path: "/v1/supports/pending", token: getToken(t, dean), wantCode: http.StatusOK},
		{name: "admin", method: http.MethodGet, path: "/v1/supports/pending", token: getToken(t, admin), wantCode: http.StatusOK},
		{name: "teacher forbidden", method: http.MethodGet, path: "/v1/supports/pending", token: getToken(t, teacher), wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				for _, got := range decodeSupports(t, rec) {
					assert.Equal(t, support.StatusSubmitted, got.Status)
				}
			}
		})
	}
}

func Test_supportAPI_queryByOwner(t *testing.T) {
	createSupport(t, supRepo, "Owned", teacher.ID, support.StatusDraft)

	tests := []httpTest{
		{name: "owner", method: http.MethodGet, path: "/v1/supports/owner/1", token: getToken(t, teacher), wantCode: http.StatusOK},
		{name: "admin", method: http.MethodGet, path: "/v1/supports/owner/1", token: getToken(t, admin), wantCode: http.StatusOK},
		{name: "other teacher forbidden", method: http.MethodGet, path: "/v1/supports/owner/1", token: getToken(t, otherTeacher), wantCode: http.StatusForbidden},
		{name: "bad owner id", method: http.MethodGet, path: "/v1/supports/owner/nope", token: getToken(t, teacher), wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				for _, got := range decodeSupports(t, rec) {
					assert.Equal(t, teacher.ID, got.OwnerID)
				}
			}
		})
	}
}

func Test_supportAPI_submit(t *testing.T) {
	draft := createSupport(t, supRepo, "Submit me", teacher.ID, support.StatusDraft)
	submitted := createSupport(t, supRepo, "Already gone", teacher.ID, support.StatusSubmitted)

	tests := []httpTest{
		{name: "non-owner forbidden", method: http.MethodPost, path: "/v1/supports/" + draft.ID + "/submit", token: getToken(t, otherTeacher), wantCode: http.StatusForbidden},
		{name: "owner submits", method: http.MethodPost, path: "/v1/supports/" + draft.ID + "/submit", token: getToken(t, teacher), wantCode: http.StatusOK},
		{name: "resubmit conflicts", method: http.MethodPost, path: "/v1/supports/" + draft.ID + "/submit", token: getToken(t, teacher), wantCode: http.StatusConflict},
		{name: "already submitted conflicts", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/submit", token: getToken(t, teacher), wantCode: http.StatusConflict},
		{name: "unknown id", method: http.MethodPost, path: "/v1/supports/ghost/submit", token: getToken(t, teacher), wantCode: http.StatusNotFound},
	}
	notifier.Reset()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				assert.Equal(t, support.StatusSubmitted, decodeSupport(t, rec).Status)
			}
		})
	}

	// exactly one successful transition, exactly one notification: deans first, owner appended
	published := notifier.Published()
	require.Len(t, published, 1)
	assert.Equal(t, draft.ID, published[0].SupportID)
	assert.Equal(t, []int{9, 1}, published[0].Recipients)
}

func Test_supportAPI_validate(t *testing.T) {
	submitted := createSupport(t, supRepo, "Validate me", teacher.ID, support.StatusSubmitted)
	note := marchallObj(t, support.ReviewNote{Note: "ok"})

	tests := []httpTest{
		{name: "teacher forbidden", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/validate", body: note, token: getToken(t, teacher), wantCode: http.StatusForbidden},
		{name: "dean validates", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/validate", body: note, token: getToken(t, dean), wantCode: http.StatusOK},
		{name: "revalidate conflicts", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/validate", body: note, token: getToken(t, dean), wantCode: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				sup := decodeSupport(t, rec)
				assert.Equal(t, support.StatusValidated, sup.Status)
				assert.True(t, sup.ValidatedOn.Valid)
				assert.Equal(t, "ok", sup.ReviewerNote.String)
			}
		})
	}
}

func Test_supportAPI_reject(t *testing.T) {
	submitted := createSupport(t, supRepo, "Reject me", teacher.ID, support.StatusSubmitted)

	tests := []httpTest{
		{
			name: "note required", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/reject",
			body: marchallObj(t, support.ReviewNote{}), token: getToken(t, dean), wantCode: http.StatusBadRequest,
		},
		{
			name: "dean rejects", method: http.MethodPost, path: "/v1/supports/" + submitted.ID + "/reject",
			body: marchallObj(t, support.ReviewNote{Note: "missing chapter"}), token: getToken(t, dean), wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				sup := decodeSupport(t, rec)
				assert.Equal(t, support.StatusRejected, sup.Status)
				assert.False(t, sup.ValidatedOn.Valid)
			}
		})
	}
}

func Test_supportAPI_destroy(t *testing.T) {
	draft := createSupport(t, supRepo, "Delete me", teacher.ID, support.StatusDraft)
	submitted := createSupport(t, supRepo, "Keep me", teacher.ID, support.StatusSubmitted)

	tests := []httpTest{
		{name: "non-owner forbidden", method: http.MethodDelete, path: "/v1/supports/" + draft.ID, token: getToken(t, otherTeacher), wantCode: http.StatusForbidden},
		{name: "owner deletes draft", method: http.MethodDelete, path: "/v1/supports/" + draft.ID, token: getToken(t, teacher), wantCode: http.StatusNoContent},
		{name: "submitted not deletable", method: http.MethodDelete, path: "/v1/supports/" + submitted.ID, token: getToken(t, admin), wantCode: http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}
}

func Test_supportAPI_ordering(t *testing.T) {
	first := createSupport(t, supRepo, "AAA algebra", teacher.ID, support.StatusDraft)
	last := createSupport(t, supRepo, "ZZZ zoology", teacher.ID, support.StatusDraft)

	req, rec := newAuthRequest(http.MethodGet, "/v1/supports?ordering=title", getToken(t, student))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	posFirst, posLast := -1, -1
	for i, sup := range decodeSupports(t, rec) {
		switch sup.ID {
		case first.ID:
			posFirst = i
		case last.ID:
			posLast = i
		}
	}
	require.NotEqual(t, -1, posFirst)
	require.NotEqual(t, -1, posLast)
	assert.Less(t, posFirst, posLast)
}

func Test_supportAPI_update(t *testing.T) {
	draft := createSupport(t, supRepo, "Old title", teacher.ID, support.StatusDraft)
	body := marchallObj(t, support.UpdateSupport{Title: "New title"})

	req, rec := newAuthRequest(http.MethodPut, "/v1/supports/"+draft.ID, getToken(t, teacher), body)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got support.Support
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, draft.OwnerID, got.OwnerID)
}
