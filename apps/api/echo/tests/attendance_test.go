package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/duotask/duotask/core/attendance"
	testutil "github.com/duotask/duotask/tests"
)

func TestAttendanceAPI(t *testing.T) {
	app, rps := setup(t)

	usr := testutil.CreateUser(t, rps.usr, "Ana", "anagarcia", "ana@test.cm", "", true)
	token := getToken(t, usr)

	grp := testutil.CreateGroup(t, rps.grp, "Matemáticas 1A", 1)
	std := testutil.CreateStudent(t, rps.std, "Luis", "Pérez", grp.ID)

	record := func(t *testing.T, fecha, status string) attendance.Attendance {
		t.Helper()
		body := []byte(fmt.Sprintf(
			`{"idGrupo": %q, "idAlumno": %q, "fecha": %q, "asistencia": %q}`,
			grp.ID, std.ID, fecha, status))
		req, rec := newAuthRequest(http.MethodPost, "/api/asistencias", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var att attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &att); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		return att
	}

	att1 := record(t, "2025-03-10", attendance.StatusPresent)
	record(t, "2025-03-11", attendance.StatusAbsent)
	record(t, "2025-04-02", attendance.StatusExcused)

	t.Run("Upsert same day updates in place", func(t *testing.T) {
		att := record(t, "2025-03-10", attendance.StatusExcused)
		if att.ID != att1.ID {
			t.Errorf("id = %q; want %q (same record)", att.ID, att1.ID)
		}
		if att.Status != attendance.StatusExcused {
			t.Errorf("asistencia = %q; want %q", att.Status, attendance.StatusExcused)
		}
	})

	listPath := fmt.Sprintf("/api/grupos/%s/estudiantes/%s/asistencias", grp.ID, std.ID)

	t.Run("List by month", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath+"?mes=3", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var records []attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %v records for March; want 2", len(records))
		}
		if records[0].Fecha != "2025-03-10" || records[1].Fecha != "2025-03-11" {
			t.Errorf("records not sorted by fecha: %v, %v", records[0].Fecha, records[1].Fecha)
		}
	})

	t.Run("List all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath+"?mes=all", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var records []attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("got %v records; want 3", len(records))
		}
	})

	t.Run("List month out of range", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath+"?mes=13", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %v; want %v; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})

	t.Run("Counts", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath+"/resumen", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"asistencias": 0, "faltas": 1, "permisos": 2}`),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Update status by id", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"asistencia": %q}`, attendance.StatusPresent))
		req, rec := newAuthRequest(http.MethodPut, "/api/asistencias/"+att1.ID, token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var att attendance.Attendance
		if err := json.Unmarshal(rec.Body.Bytes(), &att); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if att.Status != attendance.StatusPresent {
			t.Errorf("asistencia = %q; want %q", att.Status, attendance.StatusPresent)
		}
	})

	t.Run("Update unknown id", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"asistencia": %q}`, attendance.StatusPresent))
		req, rec := newAuthRequest(http.MethodPut, "/api/asistencias/nope", token, body)
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error": "asistencia no encontrada"}`),
		}
		checkCodeAndData(t, tt, rec)
	})
}
