// Package api is the HTTP controller layer: it binds requests, calls the
// feed engine and maps its structured errors to responses. No business logic
// lives here.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Reyy01/Connectly/internal/feed"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	Port     uint16
	PageSize int
}

func NewConfig(port uint16, pageSize int) *Config {
	return &Config{Port: port, PageSize: pageSize}
}

type API struct {
	ctx      context.Context
	logger   *zap.SugaredLogger
	feed     *feed.Service
	pageSize int
	router   *gin.Engine
	serv     *http.Server
}

func NewAPI(ctx context.Context, logger *zap.SugaredLogger, service *feed.Service, config *Config) *API {
	a := &API{
		ctx:      ctx,
		logger:   logger,
		feed:     service,
		pageSize: config.PageSize,
		router:   gin.New(),
	}
	a.serv = &http.Server{Addr: fmt.Sprintf(":%d", config.Port), Handler: a.router}
	return a
}

func (a *API) Listen() {
	a.registerRoutes()
	go func() {
		if err := a.serv.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				a.logger.Errorf("Server returned with error: %s.", err)
			}
		}
	}()
}

func (a *API) Close() error {
	return a.serv.Close()
}

// fail renders an engine failure with its own status code.
func fail(c *gin.Context, err error) {
	e := feed.AsError(err)
	c.JSON(e.Code, gin.H{"statusCode": e.Code, "errorMessage": e.Message})
}
