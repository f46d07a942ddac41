package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duotask/duotask/core/task"
)

type taskApi struct {
	service *task.Service
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *task.Service) {
	api := taskApi{service: svc}

	tg := g.Group("/tareas", jwt)
	tg.POST("", api.taskCreate)
	tg.GET("", api.taskQuery)
	tg.GET("/stats", api.taskStats)
	tg.GET("/:id", api.taskRetrieve)
	tg.PUT("/:id", api.taskUpdate)
	tg.DELETE("/:id", api.taskDestroy)
	tg.GET("/:id/calificaciones", api.taskGrades)

	g.PUT("/calificaciones/:id", api.gradeUpdate, jwt)
}

func (api *taskApi) taskCreate(ctx echo.Context) error {
	data := new(task.NewTask)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tsk, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

// taskQuery returns all tasks; ?grupo=<id> narrows to one group's tasks.
func (api *taskApi) taskQuery(ctx echo.Context) error {
	var (
		tasks []task.Task
		err   error
	)
	if groupID := ctx.QueryParam("grupo"); groupID != "" {
		tasks, err = api.service.GetByGroup(groupID)
	} else {
		tasks, err = api.service.QueryAll()
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) taskStats(ctx echo.Context) error {
	stats, err := api.service.GetStats(ctx.QueryParam("grupo"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *taskApi) taskRetrieve(ctx echo.Context) error {
	tsk, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskUpdate(ctx echo.Context) error {
	tsk, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	data := new(task.UpdateTask)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(tsk); err != nil {
		return err
	}

	tsk, err = api.service.Update(tsk.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) taskDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *taskApi) taskGrades(ctx echo.Context) error {
	tsk, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	grades, err := api.service.GradesByTask(tsk.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *taskApi) gradeUpdate(ctx echo.Context) error {
	data := new(task.UpdateGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	grd, err := api.service.UpdateGrade(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grd)
}
