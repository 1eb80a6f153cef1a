package main

import (
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/gin-gonic/gin"
)

const textKey = "text"

type contentType int

const (
	contentTypeText contentType = iota
	contentTypeJSON
)

var allowedContentTypeEnumMap = map[string]contentType{
	"text/plain":       contentTypeText,
	"application/json": contentTypeJSON,
}

type HttpError struct {
	code int
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func NewHttpError(code int, err error) HttpError {
	return HttpError{
		code:  code,
		error: err,
	}
}

type server struct {
	controller controller
	metrics    http.Handler
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.POST("/entities", validateBody, readText, s.Entities)
	r.POST("/candidates", validateBody, readText, s.Candidates)
	r.GET("/categories", s.Categories)
	r.GET("/metrics", gin.WrapH(s.metrics))
}

func (s server) Entities(c *gin.Context) {
	c.JSON(200, s.controller.Annotate(c.Request.Context(), c.GetString(textKey)))
}

func (s server) Candidates(c *gin.Context) {
	c.JSON(200, s.controller.Candidates(c.Request.Context(), c.GetString(textKey)))
}

func (s server) Categories(c *gin.Context) {
	c.JSON(200, s.controller.Categories())
}

// readText puts the utterance in the context. Bodies are either the raw text
// or a json object with a text field.
func readText(c *gin.Context) {
	ct, ok := allowedContentTypeEnumMap[c.ContentType()]
	if !ok {
		handleError(c, NewHttpError(400, errors.New("invalid content type - must be text/plain or application/json")))
		return
	}

	b, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		handleError(c, NewHttpError(400, err))
		return
	}

	text := string(b)
	if ct == contentTypeJSON {
		var body struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(b, &body); err != nil {
			handleError(c, NewHttpError(400, errors.New("invalid json body")))
			return
		}
		if body.Text == nil {
			handleError(c, NewHttpError(400, errors.New("json body must have a text field")))
			return
		}
		text = *body.Text
	}

	c.Set(textKey, text)
	c.Next()
}

func validateBody(c *gin.Context) {
	if c.Request.Body == nil {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else if _, err := c.Request.Body.Read(nil); err == io.EOF {
		handleError(c, NewHttpError(400, errors.New("request body missing")))
	} else {
		c.Next()
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		abort(c, 500, errors.New("abort called on nil error"))
		return
	}
	switch e := err.(type) {
	case HttpError:
		abort(c, e.code, e.error)
	default:
		abort(c, 500, e)
	}
}

func abort(c *gin.Context, code int, err error) {
	switch {
	case code <= 500:
		c.JSON(code, map[string]interface{}{
			"status":  code,
			"message": err.Error(),
		})
		c.Abort()
	default:
		_ = c.AbortWithError(code, err)
	}
}
