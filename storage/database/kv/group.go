package kvdb

import (
	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/group"
	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/storage/kvstore"
)

type groupRepository struct {
	db kvstore.Store
}

func NewGroupRepository(db kvstore.Store) group.Repository {
	return &groupRepository{db: db}
}

// withRoster attaches the computed member list: the ids of all students whose
// idGrupo matches. The roster is never stored.
func withRoster(grp group.Group, students []student.Student) group.Group {
	grp.Alumnos = make([]string, 0)
	for _, std := range students {
		if std.GroupID == grp.ID {
			grp.Alumnos = append(grp.Alumnos, std.ID)
		}
	}
	return grp
}

func (repo *groupRepository) CreateGroup(grp group.Group) (group.Group, error) {
	grp.ID = core.NewID()
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var groups []group.Group
		if err := tx.Load(groupsKey, &groups); err != nil {
			return err
		}
		grp.Alumnos = nil
		return tx.Save(groupsKey, append(groups, grp))
	})
	if err != nil {
		return group.Group{}, err
	}
	grp.Alumnos = make([]string, 0)
	return grp, nil
}

func (repo *groupRepository) QueryAllGroups() ([]group.Group, error) {
	var groups []group.Group
	err := repo.db.View(func(tx kvstore.Tx) error {
		var students []student.Student
		if err := tx.Load(groupsKey, &groups); err != nil {
			return err
		}
		if err := tx.Load(studentsKey, &students); err != nil {
			return err
		}
		for i, grp := range groups {
			groups[i] = withRoster(grp, students)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *groupRepository) GetGroupByID(id string) (group.Group, error) {
	var found group.Group
	err := repo.db.View(func(tx kvstore.Tx) error {
		var groups []group.Group
		var students []student.Student
		if err := tx.Load(groupsKey, &groups); err != nil {
			return err
		}
		for _, grp := range groups {
			if grp.ID == id {
				if err := tx.Load(studentsKey, &students); err != nil {
					return err
				}
				found = withRoster(grp, students)
				return nil
			}
		}
		return group.ErrNotFound
	})
	if err != nil {
		return group.Group{}, err
	}
	return found, nil
}

func (repo *groupRepository) UpdateGroup(grp group.Group) (group.Group, error) {
	var updated group.Group
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var groups []group.Group
		if err := tx.Load(groupsKey, &groups); err != nil {
			return err
		}
		for i, orig := range groups {
			if orig.ID == grp.ID {
				grp.CreatedAt = orig.CreatedAt
				grp.Alumnos = nil
				groups[i] = grp
				updated = grp

				var students []student.Student
				if err := tx.Load(studentsKey, &students); err != nil {
					return err
				}
				updated = withRoster(updated, students)
				return tx.Save(groupsKey, groups)
			}
		}
		return group.ErrNotFound
	})
	if err != nil {
		return group.Group{}, err
	}
	return updated, nil
}

func (repo *groupRepository) DeleteGroupsByID(ids ...string) error {
	return repo.db.Update(func(tx kvstore.Tx) error {
		var groups []group.Group
		if err := tx.Load(groupsKey, &groups); err != nil {
			return err
		}
		kept := groups[:0]
		for _, grp := range groups {
			if !containsID(ids, grp.ID) {
				kept = append(kept, grp)
			}
		}
		if len(kept) == len(groups) {
			return group.ErrNotFound
		}
		return tx.Save(groupsKey, kept)
	})
}

func containsID(ids []string, id string) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
