package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/chat"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/pricing"
)

type catalogApi struct {
	assistant *chat.Assistant
	validate  *validator.Validate
}

// registerCatalogAPI registers the public endpoints: packages, pricing & chat.
func registerCatalogAPI(g *echo.Group, assistant *chat.Assistant, validate *validator.Validate) {
	api := catalogApi{assistant: assistant, validate: validate}

	g.GET("/packages", api.queryPackages)
	g.GET("/packages/:id", api.retrievePackage)
	g.GET("/domains", api.queryDomains)

	g.GET("/pricing", api.quote)
	g.GET("/pricing/table", api.priceTable)

	g.GET("/chat", api.greet)
	g.POST("/chat", api.reply)
}

// Handlers

func (api *catalogApi) queryPackages(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, enrollment.Packages)
}

func (api *catalogApi) retrievePackage(ctx echo.Context) error {
	pkg, ok := enrollment.GetPackage(core.CleanString(ctx.Param("id"), true /* lower */))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, pkg)
}

func (api *catalogApi) queryDomains(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, enrollment.Domains)
}

func (api *catalogApi) quote(ctx echo.Context) error {
	var data QuoteRequest
	if err := ctx.Bind(&data); err != nil {
		return core.NewValidationError(errors.New("mode and duration are required"))
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mode := pricing.Mode(data.Mode)
	amount, err := pricing.Price(mode, data.Duration)
	if err != nil {
		return core.NewValidationError(err)
	}
	return ctx.JSON(http.StatusOK, pricing.Quote{Mode: mode, Duration: data.Duration, Amount: amount})
}

func (api *catalogApi) priceTable(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, pricing.Table())
}

func (api *catalogApi) greet(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ChatGreeting{
		Greeting:       api.assistant.Greeting(),
		QuickQuestions: api.assistant.QuickQuestions(),
	})
}

func (api *catalogApi) reply(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}

	reply, err := api.assistant.Reply(data.Message)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, chat.Message{From: chat.FromBot, Text: reply})
}

type (
	QuoteRequest struct {
		Mode     string `query:"mode" json:"mode" validate:"required,oneof=remote onsite hybrid"`
		Duration int    `query:"duration" json:"duration" validate:"required,min=1,max=4"`
	}

	ChatGreeting struct {
		Greeting       string               `json:"greeting"`
		QuickQuestions []chat.QuickQuestion `json:"quick_questions"`
	}

	ChatRequest struct {
		Message string `json:"message"`
	}
)

func (qr *QuoteRequest) Validate(validate *validator.Validate) error {
	qr.Mode = core.CleanString(qr.Mode, true /* lower */)
	return validate.Struct(qr)
}
