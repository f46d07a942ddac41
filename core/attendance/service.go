package attendance

import (
	"errors"
	"sort"

	"github.com/duotask/duotask/core"
)

// MonthAll disables the month filter on student attendance queries.
const MonthAll = 0

var (
	ErrNotFound = errors.New("asistencia no encontrada")

	errBadMonth = errors.New("el mes debe estar entre 1 y 12")
)

type (
	Repository interface {
		QueryAttendancesByStudent(groupID, studentID string) ([]Attendance, error)
		UpdateAttendanceStatus(id, status string) (Attendance, error)
		// UpsertAttendance creates the record, or updates the status of the
		// existing one for the same (group, student, date), atomically.
		UpsertAttendance(att Attendance) (Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ByStudent returns a student's records in a group, sorted ascending by date.
// month narrows them to one calendar month (1-12); MonthAll returns them all.
func (svc *Service) ByStudent(groupID, studentID string, month int) ([]Attendance, error) {
	if month < MonthAll || month > 12 {
		return nil, core.NewValidationError(errBadMonth, core.FieldError{Field: "mes", Error: errBadMonth.Error()})
	}

	attendances, err := svc.repo.QueryAttendancesByStudent(groupID, studentID)
	if err != nil {
		return nil, err
	}

	if month != MonthAll {
		filtered := attendances[:0]
		for _, att := range attendances {
			if date, err := core.ParseDate(att.Fecha); err == nil && int(date.Month()) == month {
				filtered = append(filtered, att)
			}
		}
		attendances = filtered
	}

	sort.Slice(attendances, func(i, j int) bool { return attendances[i].Fecha < attendances[j].Fecha })
	return attendances, nil
}

// CountsByStudent tallies a student's records by status; the counts sum to the
// student's record total.
func (svc *Service) CountsByStudent(groupID, studentID string) (Counts, error) {
	attendances, err := svc.repo.QueryAttendancesByStudent(groupID, studentID)
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, att := range attendances {
		switch att.Status {
		case StatusPresent:
			counts.Asistencias++
		case StatusAbsent:
			counts.Faltas++
		case StatusExcused:
			counts.Permisos++
		}
	}
	return counts, nil
}

func (svc *Service) UpdateStatus(id string, ua UpdateAttendance) (Attendance, error) {
	return svc.repo.UpdateAttendanceStatus(id, ua.Status)
}

// Upsert records the student's status for the day, replacing any existing
// record for the same (group, student, date).
func (svc *Service) Upsert(sa SetAttendance) (Attendance, error) {
	att := Attendance{
		GroupID:   sa.GroupID,
		StudentID: sa.StudentID,
		Status:    sa.Status,
		Fecha:     sa.Fecha,
	}
	return svc.repo.UpsertAttendance(att)
}
