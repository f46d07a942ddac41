package attendance_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
	kvdb "github.com/duotask/duotask/storage/database/kv"
	testutil "github.com/duotask/duotask/tests"
)

func TestMain(m *testing.M) {
	testutil.InitValidation()
	m.Run()
}

func setup(t *testing.T) *attendance.Service {
	t.Helper()
	db := testutil.NewTestDB(t)
	return attendance.NewService(kvdb.NewAttendanceRepository(db))
}

func record(t *testing.T, svc *attendance.Service, groupID, studentID, status, fecha string) attendance.Attendance {
	t.Helper()
	att, err := svc.Upsert(attendance.SetAttendance{
		GroupID:   groupID,
		StudentID: studentID,
		Status:    status,
		Fecha:     fecha,
	})
	if err != nil {
		t.Fatalf("Upsert() failed, %v", err)
	}
	return att
}

func Test_Service_Upsert(t *testing.T) {
	svc := setup(t)

	att := record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-03-10")
	if att.ID == "" {
		t.Error("Upsert() did not assign an id")
	}

	// repeating the same (group, student, date) updates in place
	again := record(t, svc, "g1", "s1", attendance.StatusAbsent, "2025-03-10")
	if again.ID != att.ID {
		t.Errorf("Upsert() created a second record %q; want %q updated", again.ID, att.ID)
	}

	records, err := svc.ByStudent("g1", "s1", attendance.MonthAll)
	if err != nil {
		t.Fatalf("ByStudent() failed, %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ByStudent() returned %d records; want exactly 1", len(records))
	}
	if records[0].Status != attendance.StatusAbsent {
		t.Errorf("Status = %q; want the latest status %q", records[0].Status, attendance.StatusAbsent)
	}
}

func Test_Service_Upsert_concurrent(t *testing.T) {
	svc := setup(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Upsert(attendance.SetAttendance{
				GroupID:   "g1",
				StudentID: "s1",
				Status:    attendance.StatusPresent,
				Fecha:     "2025-03-10",
			})
			if err != nil {
				t.Errorf("Upsert() failed, %v", err)
			}
		}()
	}
	wg.Wait()

	records, err := svc.ByStudent("g1", "s1", attendance.MonthAll)
	if err != nil {
		t.Fatalf("ByStudent() failed, %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ByStudent() returned %d records; want exactly 1 under concurrency", len(records))
	}
}

func Test_Service_ByStudent(t *testing.T) {
	svc := setup(t)

	record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-03-12")
	record(t, svc, "g1", "s1", attendance.StatusAbsent, "2025-03-10")
	record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-04-02")
	record(t, svc, "g1", "s2", attendance.StatusPresent, "2025-03-10") // other student
	record(t, svc, "g2", "s1", attendance.StatusPresent, "2025-03-10") // other group

	records, err := svc.ByStudent("g1", "s1", attendance.MonthAll)
	if err != nil {
		t.Fatalf("ByStudent() failed, %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ByStudent() returned %d records; want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Fecha > records[i].Fecha {
			t.Errorf("records not sorted ascending by date: %q > %q", records[i-1].Fecha, records[i].Fecha)
		}
	}

	march, err := svc.ByStudent("g1", "s1", 3)
	if err != nil {
		t.Fatalf("ByStudent(month=3) failed, %v", err)
	}
	if len(march) != 2 {
		t.Errorf("ByStudent(month=3) returned %d records; want 2", len(march))
	}

	var vErr *core.ValidationError
	if _, err := svc.ByStudent("g1", "s1", 13); !errors.As(err, &vErr) {
		t.Errorf("ByStudent(month=13) = %v; want ValidationError", err)
	}
}

func Test_Service_CountsByStudent(t *testing.T) {
	svc := setup(t)

	record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-03-10")
	record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-03-11")
	record(t, svc, "g1", "s1", attendance.StatusAbsent, "2025-03-12")
	record(t, svc, "g1", "s1", attendance.StatusExcused, "2025-03-13")

	counts, err := svc.CountsByStudent("g1", "s1")
	if err != nil {
		t.Fatalf("CountsByStudent() failed, %v", err)
	}
	want := attendance.Counts{Asistencias: 2, Faltas: 1, Permisos: 1}
	if counts != want {
		t.Errorf("CountsByStudent() = %+v; want %+v", counts, want)
	}

	records, _ := svc.ByStudent("g1", "s1", attendance.MonthAll)
	if total := counts.Asistencias + counts.Faltas + counts.Permisos; total != len(records) {
		t.Errorf("counts sum to %d; want the record total %d", total, len(records))
	}
}

func Test_Service_UpdateStatus(t *testing.T) {
	svc := setup(t)

	att := record(t, svc, "g1", "s1", attendance.StatusPresent, "2025-03-10")

	updated, err := svc.UpdateStatus(att.ID, attendance.UpdateAttendance{Status: attendance.StatusExcused})
	if err != nil {
		t.Fatalf("UpdateStatus() failed, %v", err)
	}
	if updated.Status != attendance.StatusExcused {
		t.Errorf("UpdateStatus().Status = %q; want %q", updated.Status, attendance.StatusExcused)
	}

	if _, err := svc.UpdateStatus("nope", attendance.UpdateAttendance{Status: attendance.StatusAbsent}); !errors.Is(err, attendance.ErrNotFound) {
		t.Errorf("UpdateStatus(nope) = %v; want ErrNotFound", err)
	}
}

func Test_SetAttendance_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sa      attendance.SetAttendance
		wantErr bool
	}{
		{name: "ok", sa: attendance.SetAttendance{GroupID: "g1", StudentID: "s1", Status: "asistencia", Fecha: "2025-03-10"}},
		{name: "time part dropped", sa: attendance.SetAttendance{GroupID: "g1", StudentID: "s1", Status: "falta", Fecha: "2025-03-10T08:00:00Z"}},
		{name: "bad status", sa: attendance.SetAttendance{GroupID: "g1", StudentID: "s1", Status: "tarde", Fecha: "2025-03-10"}, wantErr: true},
		{name: "bad date", sa: attendance.SetAttendance{GroupID: "g1", StudentID: "s1", Status: "permiso", Fecha: "hoy"}, wantErr: true},
		{name: "missing student", sa: attendance.SetAttendance{GroupID: "g1", Status: "permiso", Fecha: "2025-03-10"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sa.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() succeeded; want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() failed, %v", err)
			}
			if tt.sa.Fecha != "2025-03-10" {
				t.Errorf("Validate() left Fecha = %q; want day granularity", tt.sa.Fecha)
			}
		})
	}
}
