package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakoblorz/go-swfdebug/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/titanous/json5"
)

var byteOrderMark = []byte("\xEF\xBB\xBF")

// ErrInvalidDocument is returned when the manifest text is not a relaxed JSON object.
var ErrInvalidDocument = errors.New("manifest is not a valid JSON object")

// Parser turns manifest text into a Manifest.
type Parser interface {
	Parse(data []byte) (*Manifest, error)
}

// JSONCParser accepts JSON with comments and trailing commas. Documents using
// other JSON5 syntax such as unquoted keys or single quoted strings are
// accepted too.
type JSONCParser struct{}

// NewJSONCParser creates a new JSONCParser
func NewJSONCParser() *JSONCParser {
	return &JSONCParser{}
}

func (p *JSONCParser) Parse(data []byte) (*Manifest, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

// ParseDocument strips a byte order mark, comments and trailing commas and
// checks that the result is a JSON object.
func ParseDocument(data []byte) (gjson.Result, error) {
	data = bytes.TrimPrefix(data, byteOrderMark)

	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		var err error
		if clean, err = fromJSON5(data); err != nil {
			return gjson.Result{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}

	doc := gjson.ParseBytes(clean)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: top-level value is %s", ErrInvalidDocument, doc.Type)
	}
	return doc, nil
}

// fromJSON5 rewrites a JSON5 document as plain JSON. Object keys come back
// sorted and the last of any duplicate keys wins.
func fromJSON5(data []byte) ([]byte, error) {
	var value any
	if err := json5.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func fromDocument(doc gjson.Result) *Manifest {
	m := &Manifest{}

	if config := child(doc, "config"); config.Type == gjson.String {
		m.Config = models.ParseConfigKind(config.Str)
	}

	if app := child(doc, "application"); app.Exists() {
		m.Application.Present = true
		switch {
		case app.Type == gjson.String:
			m.Application.Path = stringPtr(app.Str)
		case app.IsObject():
			m.Application.ByPlatform = make(map[models.Platform]string)
			app.ForEach(func(key, value gjson.Result) bool {
				if value.Type == gjson.String {
					m.Application.ByPlatform[models.Platform(key.Str)] = value.Str
				} else {
					delete(m.Application.ByPlatform, models.Platform(key.Str))
				}
				return true
			})
		}
	}

	if compilerOptions := child(doc, "compilerOptions"); compilerOptions.IsObject() {
		m.CompilerOptions.Output = optionalString(compilerOptions, "output")
		m.CompilerOptions.LibraryPath = stringArray(child(compilerOptions, "library-path"))
		m.CompilerOptions.ExternalLibraryPath = stringArray(child(compilerOptions, "external-library-path"))
	}

	m.Files = stringArray(child(doc, "files"))

	if animateOptions := child(doc, "animateOptions"); animateOptions.IsObject() {
		m.AnimateOptions.File = optionalString(animateOptions, "file")
	}

	if airOptions := child(doc, "airOptions"); airOptions.IsObject() {
		m.AIROptions.Output = optionalString(airOptions, "output")
		airOptions.ForEach(func(key, value gjson.Result) bool {
			if !value.IsObject() {
				delete(m.AIROptions.Platforms, models.Platform(key.Str))
				return true
			}
			if m.AIROptions.Platforms == nil {
				m.AIROptions.Platforms = make(map[models.Platform]PlatformOptions)
			}
			m.AIROptions.Platforms[models.Platform(key.Str)] = PlatformOptions{
				Output: optionalString(value, "output"),
			}
			return true
		})
	}

	return m
}

// child looks up a direct child by key. Keys are matched literally, so dots
// and wildcards in key names carry no path meaning. When a key repeats, the
// last value wins.
func child(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, value gjson.Result) bool {
		if k.Str == key {
			found = value
		}
		return true
	})
	return found
}

func optionalString(obj gjson.Result, key string) *string {
	if value := child(obj, key); value.Type == gjson.String {
		return stringPtr(value.Str)
	}
	return nil
}

func stringArray(value gjson.Result) []string {
	if !value.IsArray() {
		return nil
	}

	var result []string
	for _, item := range value.Array() {
		if item.Type == gjson.String {
			result = append(result, item.Str)
		}
	}
	return result
}

func stringPtr(s string) *string {
	return &s
}
