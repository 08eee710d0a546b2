package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) HandleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", pageData{Title: "Quiz"})
}

func (a *API) HandleQuiz(c *gin.Context) {
	c.HTML(http.StatusOK, "quiz.html", pageData{Title: "Quiz"})
}

// HandleSections answers GET /api/sections with every section and its
// question count.
func (a *API) HandleSections(c *gin.Context) {
	if a.service == nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	sections, err := a.service.ListSections(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sections)
}

// HandleQuestions answers GET /api/questions?section=<key>.
func (a *API) HandleQuestions(c *gin.Context) {
	if a.service == nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	questions, err := a.service.ListQuestions(c.Request.Context(), c.Query("section"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuestionResponses(questions))
}

func (a *API) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func handleMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
}
