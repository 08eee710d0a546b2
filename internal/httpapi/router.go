package httpapi

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	"section-quiz/internal/quiz"
)

type RouterOptions struct {
	// SSL enables HTTPS redirects and HSTS. Leave off behind a TLS-terminating proxy.
	SSL bool
	// LogOutput receives one line per request. Defaults to gin.DefaultWriter.
	LogOutput io.Writer
}

func NewRouter(service *quiz.Service, opts RouterOptions) (*gin.Engine, error) {
	api := NewAPI(service)

	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = gin.DefaultWriter
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: requestLogFormat,
		Output:    logOutput,
		SkipPaths: []string{"/healthz"},
	}))
	router.Use(gin.Recovery())
	router.Use(secure.New(secureConfig(opts.SSL)))
	router.SetHTMLTemplate(pages)

	router.GET("/", api.HandleHome)
	router.GET("/quiz", api.HandleQuiz)
	router.GET("/healthz", api.HandleHealth)
	router.StaticFS("/static", http.FS(static))

	apiGroup := router.Group("/api")
	apiGroup.GET("/sections", api.HandleSections)
	apiGroup.GET("/questions", api.HandleQuestions)

	router.NoMethod(handleMethodNotAllowed)
	router.NoRoute(handleNotFound)

	return router, nil
}

func secureConfig(ssl bool) secure.Config {
	config := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if ssl {
		config.SSLRedirect = true
		config.STSSeconds = 31536000
		config.STSIncludeSubdomains = true
	}
	return config
}
