package kvdb

import (
	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
	"github.com/duotask/duotask/storage/kvstore"
)

type attendanceRepository struct {
	db kvstore.Store
}

func NewAttendanceRepository(db kvstore.Store) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryAttendancesByStudent(groupID, studentID string) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	err := repo.db.View(func(tx kvstore.Tx) error {
		var attendances []attendance.Attendance
		if err := tx.Load(attendancesKey, &attendances); err != nil {
			return err
		}
		records = make([]attendance.Attendance, 0)
		for _, att := range attendances {
			if att.GroupID == groupID && att.StudentID == studentID {
				records = append(records, att)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *attendanceRepository) UpdateAttendanceStatus(id, status string) (attendance.Attendance, error) {
	var updated attendance.Attendance
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var attendances []attendance.Attendance
		if err := tx.Load(attendancesKey, &attendances); err != nil {
			return err
		}
		for i, att := range attendances {
			if att.ID == id {
				attendances[i].Status = status
				updated = attendances[i]
				return tx.Save(attendancesKey, attendances)
			}
		}
		return attendance.ErrNotFound
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return updated, nil
}

// UpsertAttendance scans for an existing (group, student, date) record within
// the write transaction, so concurrent calls cannot create duplicates.
func (repo *attendanceRepository) UpsertAttendance(att attendance.Attendance) (attendance.Attendance, error) {
	var saved attendance.Attendance
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var attendances []attendance.Attendance
		if err := tx.Load(attendancesKey, &attendances); err != nil {
			return err
		}
		for i, existing := range attendances {
			if existing.GroupID == att.GroupID && existing.StudentID == att.StudentID &&
				core.CleanDate(existing.Fecha) == att.Fecha {
				attendances[i].Status = att.Status
				saved = attendances[i]
				return tx.Save(attendancesKey, attendances)
			}
		}
		att.ID = core.NewID()
		saved = att
		return tx.Save(attendancesKey, append(attendances, att))
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return saved, nil
}
