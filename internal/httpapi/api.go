package httpapi

import "section-quiz/internal/quiz"

type API struct {
	service *quiz.Service
}

func NewAPI(service *quiz.Service) *API {
	return &API{service: service}
}
