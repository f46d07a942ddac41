package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/attendance"
)

type attendanceApi struct {
	service *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service) {
	api := attendanceApi{service: svc}

	ag := g.Group("/asistencias", jwt)
	ag.POST("", api.attendanceUpsert)
	ag.PUT("/:id", api.attendanceUpdate)

	sg := g.Group("/grupos/:id/estudiantes/:sid/asistencias", jwt)
	sg.GET("", api.attendanceByStudent)
	sg.GET("/resumen", api.attendanceCounts)
}

// attendanceUpsert records a student's status for a day; repeating the same
// (group, student, date) updates the existing record.
func (api *attendanceApi) attendanceUpsert(ctx echo.Context) error {
	data := new(attendance.SetAttendance)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	att, err := api.service.Upsert(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *attendanceApi) attendanceUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateAttendance)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	att, err := api.service.UpdateStatus(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, att)
}

// attendanceByStudent lists a student's records; ?mes=1..12 narrows them to
// one calendar month, "all" (or absent) returns everything.
func (api *attendanceApi) attendanceByStudent(ctx echo.Context) error {
	month, err := parseMonth(ctx.QueryParam("mes"))
	if err != nil {
		return err
	}

	records, err := api.service.ByStudent(ctx.Param("id"), ctx.Param("sid"), month)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) attendanceCounts(ctx echo.Context) error {
	counts, err := api.service.CountsByStudent(ctx.Param("id"), ctx.Param("sid"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, counts)
}

func parseMonth(mes string) (int, error) {
	if mes == "" || mes == "all" {
		return attendance.MonthAll, nil
	}
	month, err := strconv.Atoi(mes)
	if err != nil {
		err = errors.New("el mes debe ser un número entre 1 y 12 o \"all\"")
		return 0, core.NewValidationError(err, core.FieldError{Field: "mes", Error: err.Error()})
	}
	return month, nil
}
