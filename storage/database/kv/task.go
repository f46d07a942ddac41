package kvdb

import (
	"time"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
	"github.com/duotask/duotask/storage/kvstore"
)

type taskRepository struct {
	db kvstore.Store
}

func NewTaskRepository(db kvstore.Store) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) CreateTask(tsk task.Task) (task.Task, error) {
	tsk.ID = core.NewID()
	err := repo.db.Update(func(tx kvstore.Tx) error {
		if err := groupExists(tx, tsk.GroupID); err != nil {
			return err
		}

		var tasks []task.Task
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		if err := tx.Save(tasksKey, append(tasks, tsk)); err != nil {
			return err
		}

		// one grade stub per current member of the group
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		var grades []task.Grade
		if err := tx.Load(gradesKey, &grades); err != nil {
			return err
		}
		for _, std := range students {
			if std.GroupID != tsk.GroupID {
				continue
			}
			grades = append(grades, task.Grade{
				ID:        core.NewID(),
				TaskID:    tsk.ID,
				StudentID: std.ID,
				CreatedAt: tsk.CreatedAt,
				UpdatedAt: tsk.CreatedAt,
			})
		}
		return tx.Save(gradesKey, grades)
	})
	if err != nil {
		return task.Task{}, err
	}
	return tsk, nil
}

func (repo *taskRepository) QueryAllTasks() ([]task.Task, error) {
	var tasks []task.Task
	err := repo.db.View(func(tx kvstore.Tx) error {
		return tx.Load(tasksKey, &tasks)
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, error) {
	var found task.Task
	err := repo.db.View(func(tx kvstore.Tx) error {
		var tasks []task.Task
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		for _, tsk := range tasks {
			if tsk.ID == id {
				found = tsk
				return nil
			}
		}
		return task.ErrNotFound
	})
	if err != nil {
		return task.Task{}, err
	}
	return found, nil
}

func (repo *taskRepository) GetTasksByGroup(groupID string) ([]task.Task, error) {
	var grpTasks []task.Task
	err := repo.db.View(func(tx kvstore.Tx) error {
		var tasks []task.Task
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		grpTasks = make([]task.Task, 0)
		for _, tsk := range tasks {
			if tsk.GroupID == groupID {
				grpTasks = append(grpTasks, tsk)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grpTasks, nil
}

func (repo *taskRepository) UpdateTask(tsk task.Task) (task.Task, error) {
	var updated task.Task
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var tasks []task.Task
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		for i, orig := range tasks {
			if orig.ID == tsk.ID {
				tsk.GroupID = orig.GroupID
				tsk.CreatedAt = orig.CreatedAt
				tasks[i] = tsk
				updated = tsk
				return tx.Save(tasksKey, tasks)
			}
		}
		return task.ErrNotFound
	})
	if err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// DeleteTasksByID removes the tasks and cascades to their grades in the same
// transaction.
func (repo *taskRepository) DeleteTasksByID(ids ...string) error {
	return repo.db.Update(func(tx kvstore.Tx) error {
		var tasks []task.Task
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		kept := tasks[:0]
		for _, tsk := range tasks {
			if !containsID(ids, tsk.ID) {
				kept = append(kept, tsk)
			}
		}
		if len(kept) == len(tasks) {
			return task.ErrNotFound
		}
		if err := tx.Save(tasksKey, kept); err != nil {
			return err
		}

		var grades []task.Grade
		if err := tx.Load(gradesKey, &grades); err != nil {
			return err
		}
		keptGrades := grades[:0]
		for _, grd := range grades {
			if !containsID(ids, grd.TaskID) {
				keptGrades = append(keptGrades, grd)
			}
		}
		return tx.Save(gradesKey, keptGrades)
	})
}

func (repo *taskRepository) QueryAllGrades() ([]task.Grade, error) {
	var grades []task.Grade
	err := repo.db.View(func(tx kvstore.Tx) error {
		return tx.Load(gradesKey, &grades)
	})
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (repo *taskRepository) GetGradesByTask(taskID string) ([]task.StudentGrade, error) {
	var taskGrades []task.StudentGrade
	err := repo.db.View(func(tx kvstore.Tx) error {
		var grades []task.Grade
		var students []student.Student
		if err := tx.Load(gradesKey, &grades); err != nil {
			return err
		}
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}

		byID := make(map[string]student.Student, len(students))
		for _, std := range students {
			byID[std.ID] = std
		}

		taskGrades = make([]task.StudentGrade, 0)
		for _, grd := range grades {
			if grd.TaskID != taskID {
				continue
			}
			taskGrades = append(taskGrades, task.StudentGrade{
				Grade:      grd,
				Estudiante: snapshotFor(byID, grd.StudentID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taskGrades, nil
}

func (repo *taskRepository) UpdateGradeByID(id string, ug task.UpdateGrade, gradedAt time.Time) (task.Grade, error) {
	var updated task.Grade
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var grades []task.Grade
		if err := tx.Load(gradesKey, &grades); err != nil {
			return err
		}
		for i, grd := range grades {
			if grd.ID != id {
				continue
			}
			if ug.Calificacion != nil {
				grd.Calificacion = ug.Calificacion
				grd.GradedAt = &gradedAt
			}
			if ug.Comentario != nil {
				grd.Comentario = *ug.Comentario
			}
			if ug.Entregada != nil {
				grd.Entregada = *ug.Entregada
				if *ug.Entregada && grd.SubmittedAt == nil {
					grd.SubmittedAt = &gradedAt
				}
			}
			grd.UpdatedAt = gradedAt
			grades[i] = grd
			updated = grd
			return tx.Save(gradesKey, grades)
		}
		return task.ErrGradeNotFound
	})
	if err != nil {
		return task.Grade{}, err
	}
	return updated, nil
}

func (repo *taskRepository) GetTasksByStudent(studentID string) ([]task.StudentTask, error) {
	var studentTasks []task.StudentTask
	err := repo.db.View(func(tx kvstore.Tx) error {
		var tasks []task.Task
		var grades []task.Grade
		if err := tx.Load(tasksKey, &tasks); err != nil {
			return err
		}
		if err := tx.Load(gradesKey, &grades); err != nil {
			return err
		}

		gradeByTask := make(map[string]task.Grade)
		for _, grd := range grades {
			if grd.StudentID == studentID {
				gradeByTask[grd.TaskID] = grd
			}
		}

		studentTasks = make([]task.StudentTask, 0, len(gradeByTask))
		for _, tsk := range tasks {
			grd, ok := gradeByTask[tsk.ID]
			if !ok {
				continue
			}
			studentTasks = append(studentTasks, task.StudentTask{
				Task:         tsk,
				Calificacion: grd.Calificacion,
				Comentario:   grd.Comentario,
				SubmittedAt:  grd.SubmittedAt,
				Entregada:    grd.Entregada,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return studentTasks, nil
}

func snapshotFor(students map[string]student.Student, id string) task.StudentSnapshot {
	if std, ok := students[id]; ok {
		return task.StudentSnapshot{ID: std.ID, Nombre: std.Nombre, Apellido: std.Apellido}
	}
	return task.UnknownStudent
}
