package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campushub/support-service/core/support"
)

type supportApi struct {
	service *support.Service
}

func registerSupportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *support.Service) {
	api := supportApi{service: svc}

	sg := g.Group("/supports", jwt)
	sg.POST("", api.supportCreate)
	sg.GET("", api.supportQuery)
	sg.GET("/pending", api.supportQueryPending)
	sg.GET("/owner/:ownerID", api.supportQueryByOwner)
	sg.GET("/:id", api.supportRetrieve)
	sg.PUT("/:id", api.supportUpdate)
	sg.POST("/:id/submit", api.supportSubmit)
	sg.POST("/:id/validate", api.supportValidate)
	sg.POST("/:id/reject", api.supportReject)
	sg.DELETE("/:id", api.supportDestroy)
}

// Handlers

func (api *supportApi) supportCreate(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	data := new(support.NewSupport)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	sup, err := api.service.Create(ctx.Request().Context(), prin, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sup)
}

func (api *supportApi) supportQuery(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	ord := new(Ordering)
	ord.Bind(ctx)

	sups, err := api.service.QueryAll(ctx.Request().Context(), prin, ord.Orderings)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sups)
}

func (api *supportApi) supportQueryPending(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	ord := new(Ordering)
	ord.Bind(ctx)

	sups, err := api.service.FilterPending(ctx.Request().Context(), prin, ord.Orderings)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sups)
}

func (api *supportApi) supportQueryByOwner(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	ownerID, err := strconv.Atoi(ctx.Param("ownerID"))
	if err != nil {
		return errHttpNotFound
	}
	ord := new(Ordering)
	ord.Bind(ctx)

	sups, err := api.service.FilterByOwner(ctx.Request().Context(), prin, ownerID, ord.Orderings)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sups)
}

func (api *supportApi) supportRetrieve(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	sup, err := api.service.GetByID(ctx.Request().Context(), prin, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (api *supportApi) supportUpdate(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	data := new(support.UpdateSupport)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}

	sup, err := api.service.Update(ctx.Request().Context(), prin, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (api *supportApi) supportSubmit(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	sup, err := api.service.Submit(ctx.Request().Context(), prin, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (api *supportApi) supportValidate(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	data := new(support.ReviewNote)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(false /* required */); err != nil {
		return err
	}

	sup, err := api.service.Validate(ctx.Request().Context(), prin, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (api *supportApi) supportReject(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	data := new(support.ReviewNote)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(true /* required */); err != nil {
		return err
	}

	sup, err := api.service.Reject(ctx.Request().Context(), prin, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sup)
}

func (api *supportApi) supportDestroy(ctx echo.Context) error {
	prin, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}

	if err = api.service.Delete(ctx.Request().Context(), prin, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
