package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/google/go-dap"
	"github.com/jakoblorz/go-swfdebug/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects how a resolved configuration is written.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
	FormatDAP  Format = "dap"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatText, FormatDAP}

// ParseFormat validates a format name. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if Format(strings.ToLower(s)) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected json, yaml, text or dap)", s)
}

// Render writes req to w in the given format.
func Render(w io.Writer, format Format, req *models.DebugRequest) error {
	switch format {
	case FormatJSON, "":
		return renderJSON(w, req)
	case FormatYAML:
		return renderYAML(w, req)
	case FormatText:
		return renderText(w, req)
	case FormatDAP:
		return renderDAP(w, req)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// RenderAll writes a list of configurations. Only json and yaml can hold more
// than one.
func RenderAll(w io.Writer, format Format, reqs []*models.DebugRequest) error {
	switch format {
	case FormatJSON, "":
		return writeIndentedJSON(w, reqs)
	case FormatYAML:
		values := make([]map[string]any, 0, len(reqs))
		for _, req := range reqs {
			value, err := toMap(req)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return writeYAML(w, values)
	default:
		return fmt.Errorf("format %q cannot render a list of configurations", format)
	}
}

func renderJSON(w io.Writer, req *models.DebugRequest) error {
	return writeIndentedJSON(w, req)
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func renderYAML(w io.Writer, req *models.DebugRequest) error {
	value, err := toMap(req)
	if err != nil {
		return err
	}
	return writeYAML(w, value)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

// toMap goes through JSON so YAML keys match launch.json keys, extras included.
func toMap(req *models.DebugRequest) (map[string]any, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return value, nil
}

const textTemplate = `{{ .Name | default "(unnamed)" }} [{{ .Type }} {{ .Request | upper }}]
{{- range .Fields }}
  {{ printf "%-18s" .Key }} {{ .Value }}
{{- end }}
`

var summaryTemplate = template.Must(template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(textTemplate))

type summaryField struct {
	Key   string
	Value string
}

type summaryData struct {
	Name    string
	Type    string
	Request string
	Fields  []summaryField
}

// fieldOrder is the display order of known keys; other keys follow sorted.
var fieldOrder = []string{
	"program", "profile", "screensize", "screenDPI", "versionPlatform", "extdir",
	"args", "runtimeExecutable", "runtimeArgs", "connect", "port",
	"platform", "bundle", "applicationID",
}

func renderText(w io.Writer, req *models.DebugRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	summary := summaryData{
		Name:    req.Name,
		Type:    req.Type,
		Request: string(req.Kind()),
	}
	delete(raw, "name")
	delete(raw, "type")
	delete(raw, "request")

	for _, key := range fieldOrder {
		if value, ok := raw[key]; ok {
			summary.Fields = append(summary.Fields, summaryField{Key: key, Value: displayValue(value)})
			delete(raw, key)
		}
	}
	rest := make([]string, 0, len(raw))
	for key := range raw {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		summary.Fields = append(summary.Fields, summaryField{Key: key, Value: displayValue(raw[key])})
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, summary); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// displayValue prints strings bare and everything else as compact JSON.
func displayValue(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return string(value)
	}
	return compact.String()
}

// renderDAP frames req as the launch or attach request a debug adapter
// expects, with the configuration as its arguments.
func renderDAP(w io.Writer, req *models.DebugRequest) error {
	arguments, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	request := dap.Request{
		ProtocolMessage: dap.ProtocolMessage{
			Seq:  1,
			Type: "request",
		},
		Command: string(req.Kind()),
	}

	var msg dap.Message
	if req.Kind() == models.RequestAttach {
		msg = &dap.AttachRequest{Request: request, Arguments: arguments}
	} else {
		msg = &dap.LaunchRequest{Request: request, Arguments: arguments}
	}

	if err := dap.WriteProtocolMessage(w, msg); err != nil {
		return fmt.Errorf("failed to write DAP message: %w", err)
	}
	return nil
}
