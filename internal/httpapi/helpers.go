package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"section-quiz/internal/quiz"
)

const errSectionRequired = "Section parameter is required"

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrSectionRequired):
		c.JSON(http.StatusBadRequest, errorResponse{Error: errSectionRequired})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func toQuestionResponses(questions []quiz.Question) []questionResponse {
	response := make([]questionResponse, 0, len(questions))
	for _, question := range questions {
		choices := question.Choices
		if choices == nil {
			choices = []string{}
		}
		response = append(response, questionResponse{
			Passage:  question.Passage,
			Question: question.Question,
			Choices:  choices,
			Answer:   question.Answer,
		})
	}
	return response
}

func requestLogFormat(param gin.LogFormatterParams) string {
	return fmt.Sprintf("%s %s %q %d %d %s\n",
		param.TimeStamp.Format(time.RFC3339),
		param.ClientIP,
		param.Method+" "+param.Path,
		param.StatusCode,
		param.BodySize,
		param.Latency,
	)
}
