package http

import (
	"fmt"
	"net/http"
	"sync"

	"tailorshop/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerInstance is the swag registry name the UI reads doc.json from.
const swaggerInstance = "tailorshop"

var registerDocOnce sync.Once

// openAPIDoc serves the embedded contract through the swag registry.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// RegisterRoutes mounts the API, a health probe and the Swagger UI on e.
func RegisterRoutes(e *echo.Echo, s *Server) error {
	doc, err := loadOpenAPIDoc()
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swaggerInstance, doc)
	})

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc.json))
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	servers.RegisterHandlers(e, s)
	return nil
}

func loadOpenAPIDoc() (openAPIDoc, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return openAPIDoc{}, err
	}
	raw, err := swagger.MarshalJSON()
	if err != nil {
		return openAPIDoc{}, fmt.Errorf("marshal openapi document: %w", err)
	}
	return openAPIDoc{json: string(raw)}, nil
}
