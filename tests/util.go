package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
	"github.com/duotask/duotask/core/user"
	"github.com/duotask/duotask/storage/kvstore"
)

// InitValidation sets up the shared validator the way app entry points do.
// Call it from TestMain.
func InitValidation() {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validator.New(), translator)
}

// NewTestDB returns a fresh in-memory store.
func NewTestDB(t *testing.T) kvstore.Store {
	t.Helper()
	db := kvstore.NewInmem()
	t.Cleanup(func() { db.Close() })
	return db
}

func CreateGroup(t *testing.T, repo group.Repository, nombre string, grado int) group.Group {
	t.Helper()
	now := time.Now().UTC()
	grp, err := repo.CreateGroup(group.Group{
		Nombre:    nombre,
		Grado:     grado,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createGroup() failed: %v", err)
	}
	return grp
}

func CreateStudent(t *testing.T, repo student.Repository, nombre, apellido, groupID string) student.Student {
	t.Helper()
	now := time.Now().UTC()
	std, err := repo.CreateStudent(student.Student{
		Nombre:    nombre,
		Apellido:  apellido,
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func CreateTask(t *testing.T, repo task.Repository, titulo, groupID string) task.Task {
	t.Helper()
	now := time.Now().UTC()
	tsk, err := repo.CreateTask(task.Task{
		Titulo:    titulo,
		GroupID:   groupID,
		Status:    task.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createTask() failed: %v", err)
	}
	return tsk
}

func CreateUser(t *testing.T, repo user.Repository, nombre, uname, email, pwd string, isActive bool) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Nombre:    nombre,
		Apellido:  "Test",
		Username:  uname,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}
