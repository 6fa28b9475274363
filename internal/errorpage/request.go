package errorpage

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/munnerz/goautoneg"
)

const (
	// RootPath is the only path error pages are served on.
	RootPath = "/"
	// CodeHeader is the name of the header that holds the HTTP status code of the error page to return.
	CodeHeader = "X-Code"
	// FormatHeader is the name of the header that holds the format of the error page to return.
	// ingress-nginx sets it to the value of the Accept header sent by the client.
	FormatHeader = "X-Format"
	// DefaultFormat is the format used when FormatHeader is missing or has no usable media type.
	DefaultFormat = "html"
	// DefaultCode is the code used when CodeHeader is missing or is not an unsigned integer.
	DefaultCode uint32 = 404
)

// Headers ingress-nginx sets on requests to the default backend. They are only logged.
const (
	OriginalURIHeader = "X-Original-URI"
	NamespaceHeader   = "X-Namespace"
	IngressNameHeader = "X-Ingress-Name"
	ServiceNameHeader = "X-Service-Name"
	ServicePortHeader = "X-Service-Port"
	RequestIDHeader   = "X-Request-ID"
)

var (
	extensionRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9.+-]*$`)
	errNoMediaType  = errors.New("no concrete media type")
)

// ParseCode parses the value of CodeHeader.
// A single leading plus sign is accepted.
// A missing value resolves to DefaultCode. A value that is not an unsigned 32-bit integer resolves to DefaultCode
// together with an error describing why it was rejected.
func ParseCode(value string) (uint32, error) {
	if value == "" {
		return DefaultCode, nil
	}

	code, err := strconv.ParseUint(strings.TrimPrefix(value, "+"), 10, 32)
	if err != nil {
		return DefaultCode, fmt.Errorf("invalid %s header %q: %w", CodeHeader, value, err)
	}

	return uint32(code), nil
}

// ParseFormat resolves the value of FormatHeader to the extension of the error page file.
//
// The value is parsed as an Accept header. The extension of a media type is its subtype without the structured
// syntax suffix, so text/html resolves to html and application/problem+json to problem. Media types are tried in the
// order of preference of the client and the first one for which exists returns true is chosen. If none of them
// exists, the most preferred one is returned.
//
// A missing value resolves to DefaultFormat. A value without any concrete media type resolves to DefaultFormat
// together with an error.
func ParseFormat(value string, exists func(extension string) bool) (string, error) {
	if value == "" {
		return DefaultFormat, nil
	}

	var candidates []string
	for _, accept := range goautoneg.ParseAccept(value) {
		if accept.Q <= 0 {
			continue
		}

		ext, ok := extensionFromSubType(accept.SubType)
		if !ok {
			continue
		}

		candidates = append(candidates, ext)
	}

	if len(candidates) == 0 {
		return DefaultFormat, fmt.Errorf("invalid %s header %q: %w", FormatHeader, value, errNoMediaType)
	}

	for _, ext := range candidates {
		if exists(ext) {
			return ext, nil
		}
	}

	return candidates[0], nil
}

func extensionFromSubType(subType string) (string, bool) {
	if subType == "" || subType == "*" {
		return "", false
	}

	ext, _, _ := strings.Cut(strings.ToLower(subType), "+")

	if !extensionRegexp.MatchString(ext) {
		return "", false
	}

	return ext, true
}
