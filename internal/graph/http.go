package graph

import (
	"errors"

	"waypost/internal/middleware"
	"waypost/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type formattedError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Data    []models.FieldError `json:"data,omitempty"`
}

// Handler returns the POST /graphql endpoint. Every execution error is
// reported in a uniform shape carrying a message, an HTTP-style status code,
// and optional per-field validation details.
func Handler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req graphqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []formattedError{{Message: "Malformed request body.", Status: fiber.StatusBadRequest}},
			})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.UserContext(),
		})

		if len(result.Errors) == 0 {
			return c.JSON(fiber.Map{"data": result.Data})
		}

		formatted := make([]formattedError, 0, len(result.Errors))
		for _, fe := range result.Errors {
			formatted = append(formatted, formatError(fe))
			middleware.Logger.WarnContext(c.UserContext(), "graphql operation failed",
				"operation", req.OperationName,
				"error", fe.Message,
			)
		}
		return c.JSON(fiber.Map{"data": result.Data, "errors": formatted})
	}
}

// formatError digs the application error out of the layers graphql-go wraps
// around resolver failures. Errors with no status, including syntax and
// resolution errors raised by the engine itself, report as 500.
func formatError(fe gqlerrors.FormattedError) formattedError {
	err := fe.OriginalError()
	var gqlErr *gqlerrors.Error
	if errors.As(err, &gqlErr) && gqlErr.OriginalError != nil {
		err = gqlErr.OriginalError
	}
	if appErr := models.AsAppError(err); appErr != nil {
		status := appErr.Status
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return formattedError{Message: appErr.Message, Status: status, Data: appErr.Data}
	}
	return formattedError{Message: fe.Message, Status: fiber.StatusInternalServerError}
}

const playgroundPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>GraphQL Playground</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css" />
  <script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root"></div>
  <script>
    window.addEventListener('load', function () {
      GraphQLPlayground.init(document.getElementById('root'), { endpoint: '/graphql' })
    })
  </script>
</body>
</html>`

// Playground serves an in-browser IDE pointed at the /graphql endpoint.
func Playground() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(playgroundPage)
	}
}
