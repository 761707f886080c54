package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetBodyFields returns the names of the fields of resource that are
// set in the request body, null values included.
//
// Fields of embedded structs are inspected as well.
//
// This function reads and copies the request body, it must always
// be called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]string, error) {
	// Copy the body to be able to use it multiple times
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return []string{}, ErrRequestBodyEmpty
	}

	// Parse the body into a map to have all fields available
	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []string{}, ErrInvalidBody
	}

	return bodyFields(reflect.TypeOf(resource), mapBody), nil
}

func bodyFields(t reflect.Type, mapBody map[string]any) []string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := []string{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			fields = append(fields, bodyFields(field.Type, mapBody)...)
			continue
		}

		param, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		// If the request body has the field, add it to the return value
		if _, ok := mapBody[param]; ok {
			fields = append(fields, field.Name)
		}
	}

	return fields
}

// GetURLFields checks which query parameters are set and which of them
// filter envelopes directly.
//
// queryFields contains the names of the fields that are compared with a
// stored envelope field as they are. setFields contains all field names set
// in the query string, including fields with filterField:"false" that need
// explicit handling by the caller (e.g. a search term).
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			setFields = append(setFields, field)

			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}
	return queryFields, setFields
}
