package oembed

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/embedhost/backend/internal/urlgen"
)

// FormatJSON is the only response format served.
const FormatJSON = "json"

// Locator identifies a media entry by the slugs in its permalink.
type Locator struct {
	UserSlug  string
	MediaSlug string
}

// SizeConstraint carries the optional maxheight/maxwidth limits of a request.
// A nil field means the dimension is unconstrained.
type SizeConstraint struct {
	MaxHeight *int `validate:"omitempty,gt=0"`
	MaxWidth  *int `validate:"omitempty,gt=0"`
}

// sizeQuery receives the first value of each size parameter.
type sizeQuery struct {
	MaxHeight []int `schema:"maxheight"`
	MaxWidth  []int `schema:"maxwidth"`
}

var (
	queryDecoder   = newQueryDecoder()
	queryValidator = validator.New()
)

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ParseRequest validates an inbound oEmbed request and extracts the addressed media
// entry and size constraints. Whether the entry exists is left to the caller.
func ParseRequest(r *http.Request) (Locator, SizeConstraint, error) {
	if r.Method != http.MethodGet {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: %s", ErrMethodNotAllowed, r.Method)
	}

	params, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: malformed query string", ErrBadRequest)
	}

	target := first(params["url"])
	if target == "" {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: url parameter is required", ErrBadRequest)
	}

	if formats, ok := params["format"]; ok && first(formats) != FormatJSON {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: format %q", ErrNotImplemented, first(formats))
	}

	u, err := url.Parse(target)
	if err != nil {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: url is not valid", ErrBadRequest)
	}

	if u.User != nil {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: url must not carry user info", ErrBadRequest)
	}

	if !strings.EqualFold(u.Host, r.Host) {
		return Locator{}, SizeConstraint{}, fmt.Errorf("%w: url host %q does not match %q", ErrBadRequest, u.Host, r.Host)
	}

	loc, err := parseLocator(u.Path)
	if err != nil {
		return Locator{}, SizeConstraint{}, err
	}

	constraint, err := parseSizeConstraint(params)
	if err != nil {
		return Locator{}, SizeConstraint{}, err
	}

	return loc, constraint, nil
}

// parseLocator accepts paths of the form /u/<user>/m/<media>/.
func parseLocator(p string) (Locator, error) {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) != 4 {
		return Locator{}, fmt.Errorf("%w: url path %q is not a media permalink", ErrBadRequest, p)
	}
	for _, segment := range segments {
		if segment == "" {
			return Locator{}, fmt.Errorf("%w: url path %q has an empty segment", ErrBadRequest, p)
		}
	}
	if segments[0] != urlgen.UserMarker || segments[2] != urlgen.MediaMarker {
		return Locator{}, fmt.Errorf("%w: url path %q is not a media permalink", ErrBadRequest, p)
	}

	return Locator{UserSlug: segments[1], MediaSlug: segments[3]}, nil
}

func parseSizeConstraint(params url.Values) (SizeConstraint, error) {
	firsts := url.Values{}
	for _, key := range []string{"maxheight", "maxwidth"} {
		if values := params[key]; len(values) > 0 {
			firsts.Set(key, values[0])
		}
	}

	var q sizeQuery
	if err := queryDecoder.Decode(&q, firsts); err != nil {
		return SizeConstraint{}, fmt.Errorf("%w: maxheight and maxwidth must be integers", ErrBadRequest)
	}

	var c SizeConstraint
	if len(q.MaxHeight) > 0 {
		c.MaxHeight = &q.MaxHeight[0]
	}
	if len(q.MaxWidth) > 0 {
		c.MaxWidth = &q.MaxWidth[0]
	}

	if err := queryValidator.Struct(c); err != nil {
		return SizeConstraint{}, fmt.Errorf("%w: maxheight and maxwidth must be positive", ErrBadRequest)
	}

	return c, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
