package kvdb

import (
	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/storage/kvstore"
)

type studentRepository struct {
	db kvstore.Store
}

func NewStudentRepository(db kvstore.Store) student.Repository {
	return &studentRepository{db: db}
}

func groupExists(tx kvstore.Tx, id string) error {
	var groups []group.Group
	if err := tx.Load(groupsKey, &groups); err != nil {
		return err
	}
	for _, grp := range groups {
		if grp.ID == id {
			return nil
		}
	}
	return group.ErrNotFound
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	std.ID = core.NewID()
	err := repo.db.Update(func(tx kvstore.Tx) error {
		if err := groupExists(tx, std.GroupID); err != nil {
			return err
		}
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		return tx.Save(studentsKey, append(students, std))
	})
	if err != nil {
		return student.Student{}, err
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var students []student.Student
	err := repo.db.View(func(tx kvstore.Tx) error {
		return tx.Load(studentsKey, &students)
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	var found student.Student
	err := repo.db.View(func(tx kvstore.Tx) error {
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		for _, std := range students {
			if std.ID == id {
				found = std
				return nil
			}
		}
		return student.ErrNotFound
	})
	if err != nil {
		return student.Student{}, err
	}
	return found, nil
}

func (repo *studentRepository) GetStudentsByGroup(groupID string) ([]student.Student, error) {
	var members []student.Student
	err := repo.db.View(func(tx kvstore.Tx) error {
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		members = make([]student.Student, 0)
		for _, std := range students {
			if std.GroupID == groupID {
				members = append(members, std)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	var updated student.Student
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		for i, orig := range students {
			if orig.ID == std.ID {
				// group transfers re-verify the target group in the same
				// transaction
				if std.GroupID != orig.GroupID {
					if err := groupExists(tx, std.GroupID); err != nil {
						return err
					}
				}
				std.CreatedAt = orig.CreatedAt
				students[i] = std
				updated = std
				return tx.Save(studentsKey, students)
			}
		}
		return student.ErrNotFound
	})
	if err != nil {
		return student.Student{}, err
	}
	return updated, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...string) error {
	return repo.db.Update(func(tx kvstore.Tx) error {
		var students []student.Student
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		kept := students[:0]
		for _, std := range students {
			if !containsID(ids, std.ID) {
				kept = append(kept, std)
			}
		}
		if len(kept) == len(students) {
			return student.ErrNotFound
		}
		return tx.Save(studentsKey, kept)
	})
}
