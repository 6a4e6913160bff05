package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabhost/tabhost/engine/core"
)

// respondProblem writes a canonical RFC 7807 error response.
func respondProblem(c *gin.Context, problem *core.Problem) {
	prepared := core.NormalizeProblem(problem)
	body := core.BuildProblemBody(prepared)
	c.JSON(prepared.Status, body)
	c.Abort()
}

// respondProblemWithCode writes a problem response embedding a code and
// detail.
func respondProblemWithCode(c *gin.Context, status int, code, detail string) {
	respondProblem(c, &core.Problem{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
		Extras: map[string]any{"code": code},
	})
}
