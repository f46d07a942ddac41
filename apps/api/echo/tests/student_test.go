package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/duotask/duotask/core/student"
	testutil "github.com/duotask/duotask/tests"
)

func TestStudentAPI(t *testing.T) {
	app, rps := setup(t)

	usr := testutil.CreateUser(t, rps.usr, "Ana", "anagarcia", "ana@test.cm", "", true)
	token := getToken(t, usr)

	grp1 := testutil.CreateGroup(t, rps.grp, "Matemáticas 1A", 1)
	grp2 := testutil.CreateGroup(t, rps.grp, "Ciencias 2B", 2)
	std1 := testutil.CreateStudent(t, rps.std, "Luis", "Pérez", grp1.ID)
	std2 := testutil.CreateStudent(t, rps.std, "María", "Santos", grp2.ID)

	tests := []httpTest{
		{
			name:     "Query",
			method:   http.MethodGet,
			path:     "/api/estudiantes",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []student.Student{std1, std2}),
		},
		{
			name:     "Query by group",
			method:   http.MethodGet,
			path:     "/api/estudiantes?grupo=" + grp2.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []student.Student{std2}),
		},
		{
			name:     "Retrieve",
			method:   http.MethodGet,
			path:     "/api/estudiantes/" + std1.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, std1),
		},
		{
			name:     "Retrieve not found",
			method:   http.MethodGet,
			path:     "/api/estudiantes/nope",
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "estudiante no encontrado"}),
		},
		{
			name:     "Create with unknown group",
			method:   http.MethodPost,
			path:     "/api/estudiantes",
			token:    token,
			body:     []byte(`{"nombre": "Pepe", "apellido": "Nadie", "idGrupo": "nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"error": {"idGrupo": "el grupo seleccionado no existe"}}`),
		},
		{
			name:     "Delete",
			method:   http.MethodDelete,
			path:     "/api/estudiantes/" + std2.ID,
			token:    token,
			wantCode: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	t.Run("Group transfer updates rosters", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"idGrupo": %q}`, grp2.ID))
		req, rec := newAuthRequest(http.MethodPut, "/api/estudiantes/"+std1.ID, token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		grp, err := rps.grp.GetGroupByID(grp2.ID)
		if err != nil {
			t.Fatalf("GetGroupByID() failed: %v", err)
		}
		if len(grp.Alumnos) != 1 || grp.Alumnos[0] != std1.ID {
			t.Errorf("alumnos = %v; want [%v]", grp.Alumnos, std1.ID)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/estudiantes/stats", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var stats student.Stats
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if stats.TotalStudents != 1 {
			t.Errorf("totalStudents = %v; want 1", stats.TotalStudents)
		}
		if got := stats.StudentsByGroup[grp1.ID].Count; got != 0 {
			t.Errorf("count for %q = %v; want 0", grp1.Nombre, got)
		}
		if got := stats.StudentsByGroup[grp2.ID].Count; got != 1 {
			t.Errorf("count for %q = %v; want 1", grp2.Nombre, got)
		}
	})
}
