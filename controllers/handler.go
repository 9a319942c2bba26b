package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/fitdiary/backend/middlewares"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

// InputSource says where an endpoint reads its input from.
type InputSource int

const (
	// SourceJSON reads the request body. GET requests always read the query.
	SourceJSON InputSource = iota
	SourceQuery
	// SourceNone binds no input; the endpoint works from route params.
	SourceNone
)

// Endpoint declares one API operation. I and O are the request and response
// types; their `validate` tags are checked before and after Handle runs.
type Endpoint[I, O any] struct {
	Source      InputSource
	RequireAuth bool
	// Status is the success status, 200 when zero.
	Status int
	// SkipStore runs Handle without acquiring a database connection.
	SkipStore bool
	Handle    func(*Call[I]) (*O, error)
}

// Call is what a handler sees of the request.
type Call[I any] struct {
	Ctx     context.Context
	Input   I
	Claims  *utils.AuthClaims
	Params  gin.Params
	Repos   repositories.Repos
	Logger  logrus.FieldLogger
	Request *http.Request

	writer http.ResponseWriter
}

func (c *Call[I]) Param(name string) string { return c.Params.ByName(name) }

func (c *Call[I]) SetCookie(cookie *http.Cookie) { http.SetCookie(c.writer, cookie) }

// Deps are shared by every endpoint.
type Deps struct {
	Store    repositories.Store
	Codec    *utils.TokenCodec
	Validate *validator.Validate
	Logger   logrus.FieldLogger

	// SecureCookies marks session cookies Secure.
	SecureCookies bool
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// Handle adapts an Endpoint to gin: authorize, bind and validate input,
// run the handler on an acquired connection, validate and write the output.
// Errors are mapped to statuses by utils.StatusCode.
func Handle[I, O any](deps Deps, ep Endpoint[I, O]) gin.HandlerFunc {
	status := ep.Status
	if status == 0 {
		status = http.StatusOK
	}
	return func(c *gin.Context) {
		out, err := run(c, deps, ep)
		if err != nil {
			fail(c, deps.Logger, err)
			return
		}
		c.JSON(status, out)
	}
}

func run[I, O any](c *gin.Context, deps Deps, ep Endpoint[I, O]) (out *O, err error) {
	defer func() {
		if r := recover(); r != nil {
			deps.Logger.WithField("stack", string(debug.Stack())).Errorf("panic in handler: %v", r)
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	call := &Call[I]{
		Ctx:     c.Request.Context(),
		Params:  c.Params,
		Logger:  deps.Logger.WithField("request_id", middlewares.RequestID(c)),
		Request: c.Request,
		writer:  c.Writer,
	}

	if ep.RequireAuth {
		claims, err := middlewares.Authorize(c, deps.Codec)
		if err != nil {
			return nil, err
		}
		call.Claims = claims
		call.Logger = call.Logger.WithField("user_id", claims.UserID)
	}

	if err := bind(c, ep.Source, &call.Input); err != nil {
		return nil, err
	}
	if err := validateStruct(deps.Validate, call.Input); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidRequestPayload, err)
	}

	invoke := func(repos repositories.Repos) error {
		call.Repos = repos
		res, err := ep.Handle(call)
		if err != nil {
			return err
		}
		out = res
		return nil
	}
	if ep.SkipStore {
		err = invoke(repositories.Repos{})
	} else {
		err = deps.Store.WithConn(call.Ctx, invoke)
	}
	if err != nil {
		return nil, err
	}

	if out == nil {
		return nil, errors.New("handler returned no response")
	}
	if err := validateStruct(deps.Validate, *out); err != nil {
		return nil, fmt.Errorf("response does not match its schema: %w", err)
	}
	return out, nil
}

func bind[I any](c *gin.Context, source InputSource, dst *I) error {
	var err error
	switch {
	case source == SourceNone:
		return nil
	case c.Request.Method == http.MethodGet || source == SourceQuery:
		err = c.ShouldBindQuery(dst)
	default:
		err = c.ShouldBindJSON(dst)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidRequestPayload, err)
	}
	return nil
}

// validateStruct validates struct values and skips anything else, so
// endpoints may use plain types such as struct{} or a slice wrapper.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}
	return err
}

func fail(c *gin.Context, log logrus.FieldLogger, err error) {
	status := utils.StatusCode(err)
	entry := log.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     status,
		"request_id": middlewares.RequestID(c),
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": utils.ErrorMessage(err)})
}
