package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/duotask/duotask/core/event"
)

type eventApi struct {
	service *event.Service
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *event.Service) {
	api := eventApi{service: svc}

	eg := g.Group("/eventos", jwt)
	eg.POST("", api.eventCreate)
	eg.GET("", api.eventQuery)
	eg.GET("/:id", api.eventRetrieve)
	eg.PUT("/:id", api.eventUpdate)
	eg.DELETE("/:id", api.eventDestroy)
}

func (api *eventApi) eventCreate(ctx echo.Context) error {
	data := new(event.NewEvent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	evt, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) eventQuery(ctx echo.Context) error {
	events, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) eventRetrieve(ctx echo.Context) error {
	evt, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) eventUpdate(ctx echo.Context) error {
	evt, err := api.service.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	data := new(event.UpdateEvent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(evt); err != nil {
		return err
	}

	evt, err = api.service.Update(evt.ID, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) eventDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
