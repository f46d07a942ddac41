package task_test

import (
	"errors"
	"testing"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
	kvdb "github.com/duotask/duotask/storage/database/kv"
	"github.com/duotask/duotask/storage/kvstore"
	testutil "github.com/duotask/duotask/tests"
)

func TestMain(m *testing.M) {
	testutil.InitValidation()
	m.Run()
}

type fixture struct {
	svc     *task.Service
	repo    task.Repository
	grpRepo group.Repository
	stdRepo student.Repository
}

func setup(t *testing.T) (fixture, kvstore.Store) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := kvdb.NewTaskRepository(db)
	return fixture{
		svc:     task.NewService(repo),
		repo:    repo,
		grpRepo: kvdb.NewGroupRepository(db),
		stdRepo: kvdb.NewStudentRepository(db),
	}, db
}

func Test_Service_Create_gradeStubs(t *testing.T) {
	fix, _ := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	ana := testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	luis := testutil.CreateStudent(t, fix.stdRepo, "Luis", "Pérez", grp.ID)

	tsk, err := fix.svc.Create(task.NewTask{Titulo: "Ensayo", GroupID: grp.ID, FechaEntrega: "2025-04-01"})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	if tsk.Status != task.StatusActive {
		t.Errorf("Create().Status = %q; want %q", tsk.Status, task.StatusActive)
	}

	grades, err := fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	if len(grades) != 2 {
		t.Fatalf("GradesByTask() returned %d grades; want one stub per member (2)", len(grades))
	}
	seen := map[string]bool{}
	for _, grd := range grades {
		seen[grd.StudentID] = true
		if grd.Calificacion != nil {
			t.Errorf("stub for %s has a score; want null", grd.StudentID)
		}
		if grd.Entregada {
			t.Errorf("stub for %s is submitted; want not submitted", grd.StudentID)
		}
	}
	if !seen[ana.ID] || !seen[luis.ID] {
		t.Errorf("stubs cover %v; want both students", seen)
	}
}

func Test_Service_Create_missingGroup(t *testing.T) {
	fix, _ := setup(t)

	_, err := fix.svc.Create(task.NewTask{Titulo: "Ensayo", GroupID: "nope"})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() = %v; want ValidationError", err)
	}

	tasks, err := fix.svc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed, %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("QueryAll() = %v; want no tasks", tasks)
	}
}

func Test_Service_UpdateGrade(t *testing.T) {
	fix, _ := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	ana := testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	tsk := testutil.CreateTask(t, fix.repo, "Ensayo", grp.ID)

	grades, err := fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	if len(grades) != 1 {
		t.Fatalf("GradesByTask() returned %d grades; want 1", len(grades))
	}

	score := 8.5
	ug := task.UpdateGrade{Calificacion: &score}
	if err := ug.Validate(); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	grd, err := fix.svc.UpdateGrade(grades[0].ID, ug)
	if err != nil {
		t.Fatalf("UpdateGrade() failed, %v", err)
	}
	if grd.Calificacion == nil || *grd.Calificacion != 8.5 {
		t.Errorf("UpdateGrade().Calificacion = %v; want 8.5", grd.Calificacion)
	}
	if grd.GradedAt == nil {
		t.Error("UpdateGrade() did not stamp fechaCalificacion")
	}

	// the score shows up attached to the right student snapshot
	grades, err = fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	if grades[0].Estudiante.ID != ana.ID || grades[0].Estudiante.Nombre != "Ana" {
		t.Errorf("Estudiante = %+v; want Ana's snapshot", grades[0].Estudiante)
	}
	if grades[0].Calificacion == nil || *grades[0].Calificacion != 8.5 {
		t.Errorf("Calificacion = %v; want 8.5", grades[0].Calificacion)
	}

	if _, err := fix.svc.UpdateGrade("nope", ug); !errors.Is(err, task.ErrGradeNotFound) {
		t.Errorf("UpdateGrade(nope) = %v; want ErrGradeNotFound", err)
	}
}

func Test_UpdateGrade_bounds(t *testing.T) {
	for _, score := range []float64{-1, 10.5} {
		ug := task.UpdateGrade{Calificacion: &score}
		if err := ug.Validate(); err == nil {
			t.Errorf("Validate() accepted score %v; want error", score)
		}
	}
}

func Test_Service_deletedStudentSnapshot(t *testing.T) {
	fix, _ := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	ana := testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	tsk := testutil.CreateTask(t, fix.repo, "Ensayo", grp.ID)

	if err := fix.stdRepo.DeleteStudentsByID(ana.ID); err != nil {
		t.Fatalf("DeleteStudentsByID() failed, %v", err)
	}

	// the grade record survives as an orphan and reads with a placeholder
	grades, err := fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	if len(grades) != 1 {
		t.Fatalf("GradesByTask() returned %d grades; want the orphan kept", len(grades))
	}
	if grades[0].Estudiante != task.UnknownStudent {
		t.Errorf("Estudiante = %+v; want the placeholder snapshot", grades[0].Estudiante)
	}
}

func Test_Service_TasksByStudent(t *testing.T) {
	fix, _ := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	ana := testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	tsk := testutil.CreateTask(t, fix.repo, "Ensayo", grp.ID)
	testutil.CreateStudent(t, fix.stdRepo, "Luis", "Pérez", grp.ID) // enrolled after: no stub

	tasks, err := fix.svc.TasksByStudent(ana.ID)
	if err != nil {
		t.Fatalf("TasksByStudent() failed, %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != tsk.ID {
		t.Fatalf("TasksByStudent() = %v; want [%s]", tasks, tsk.ID)
	}
	if tasks[0].Calificacion != nil || tasks[0].Entregada {
		t.Errorf("merged grade = %+v; want the ungraded stub", tasks[0])
	}
}

func Test_Service_Delete_cascadesGrades(t *testing.T) {
	fix, db := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	tsk := testutil.CreateTask(t, fix.repo, "Ensayo", grp.ID)

	// unrelated attendance records survive the cascade
	attRepo := kvdb.NewAttendanceRepository(db)
	att := attendance.Attendance{GroupID: grp.ID, StudentID: "s1", Status: attendance.StatusPresent, Fecha: "2025-03-10"}
	if _, err := attRepo.UpsertAttendance(att); err != nil {
		t.Fatalf("UpsertAttendance() failed, %v", err)
	}

	if err := fix.svc.Delete(tsk.ID); err != nil {
		t.Fatalf("Delete() failed, %v", err)
	}
	grades, err := fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("GradesByTask() = %v; want the grades cascaded", grades)
	}
	records, err := attRepo.QueryAttendancesByStudent(grp.ID, "s1")
	if err != nil {
		t.Fatalf("QueryAttendancesByStudent() failed, %v", err)
	}
	if len(records) != 1 {
		t.Errorf("attendance records = %v; want untouched", records)
	}
}

func Test_Service_GetStats(t *testing.T) {
	fix, _ := setup(t)
	grp := testutil.CreateGroup(t, fix.grpRepo, "3A", 3)
	testutil.CreateStudent(t, fix.stdRepo, "Ana", "García", grp.ID)
	testutil.CreateStudent(t, fix.stdRepo, "Luis", "Pérez", grp.ID)
	tsk := testutil.CreateTask(t, fix.repo, "Ensayo", grp.ID)
	testutil.CreateTask(t, fix.repo, "Examen", grp.ID)

	// grade one of Ensayo's stubs and complete the task
	grades, err := fix.svc.GradesByTask(tsk.ID)
	if err != nil {
		t.Fatalf("GradesByTask() failed, %v", err)
	}
	score := 9.0
	if _, err := fix.svc.UpdateGrade(grades[0].ID, task.UpdateGrade{Calificacion: &score}); err != nil {
		t.Fatalf("UpdateGrade() failed, %v", err)
	}
	ut := task.UpdateTask{Status: task.StatusCompleted}
	if err := ut.Validate(tsk); err != nil {
		t.Fatalf("Validate() failed, %v", err)
	}
	if _, err := fix.svc.Update(tsk.ID, ut); err != nil {
		t.Fatalf("Update() failed, %v", err)
	}

	stats, err := fix.svc.GetStats("")
	if err != nil {
		t.Fatalf("GetStats() failed, %v", err)
	}
	want := task.Stats{
		TaskCount:             2,
		CompletedTasks:        1,
		ActiveTasksPercent:    50,
		GradesAssigned:        1,
		GradesPending:         3,
		GradesAssignedPercent: 25,
	}
	if stats != want {
		t.Errorf("GetStats() = %+v; want %+v", stats, want)
	}

	// group filter
	stats, err = fix.svc.GetStats("nope")
	if err != nil {
		t.Fatalf("GetStats() failed, %v", err)
	}
	if stats.TaskCount != 0 || stats.GradesAssigned != 0 {
		t.Errorf("GetStats(nope) = %+v; want zero counts", stats)
	}
}
