package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duotask/duotask/core/group"
)

type groupApi struct {
	service *group.Service
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *group.Service) {
	api := groupApi{service: svc}

	gg := g.Group("/grupos", jwt)
	gg.POST("", api.groupCreate)
	gg.GET("", api.groupQuery)
	gg.GET("/resumen", api.groupSummary)
	gg.GET("/:id", api.groupRetrieve)
	gg.PUT("/:id", api.groupUpdate)
	gg.DELETE("/:id", api.groupDestroy)
}

func (api *groupApi) groupCreate(ctx echo.Context) error {
	data := new(group.NewGroup)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	grp, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) groupQuery(ctx echo.Context) error {
	groups, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) groupSummary(ctx echo.Context) error {
	summary, err := api.service.Summarize()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *groupApi) groupRetrieve(ctx echo.Context) error {
	grp, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) groupUpdate(ctx echo.Context) error {
	grp, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	data := new(group.UpdateGroup)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(grp); err != nil {
		return err
	}

	grp, err = api.service.Update(grp.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) groupDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
