package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duotask/duotask/core/student"
	"github.com/duotask/duotask/core/task"
)

type studentApi struct {
	service *student.Service
	taskSvc *task.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service, taskSvc *task.Service) {
	api := studentApi{service: svc, taskSvc: taskSvc}

	sg := g.Group("/estudiantes", jwt)
	sg.POST("", api.studentCreate)
	sg.GET("", api.studentQuery)
	sg.GET("/stats", api.studentStats)
	sg.GET("/:id", api.studentRetrieve)
	sg.PUT("/:id", api.studentUpdate)
	sg.DELETE("/:id", api.studentDestroy)
	sg.GET("/:id/tareas", api.studentTasks)
}

func (api *studentApi) studentCreate(ctx echo.Context) error {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, std)
}

// studentQuery returns all students; ?grupo=<id> narrows to one group's
// members.
func (api *studentApi) studentQuery(ctx echo.Context) error {
	var (
		students []student.Student
		err      error
	)
	if groupID := ctx.QueryParam("grupo"); groupID != "" {
		students, err = api.service.GetByGroup(groupID)
	} else {
		students, err = api.service.QueryAll()
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) studentStats(ctx echo.Context) error {
	stats, err := api.service.GetStats()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	std, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) studentUpdate(ctx echo.Context) error {
	std, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	data := new(student.UpdateStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(std); err != nil {
		return err
	}

	std, err = api.service.Update(std.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) studentDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) studentTasks(ctx echo.Context) error {
	std, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	tasks, err := api.taskSvc.TasksByStudent(std.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tasks)
}
