package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/navlayout/internal/errors" // Custom errors package
	"github.com/mcncl/navlayout/internal/models"
	"gopkg.in/yaml.v3"
)

// Input formats understood by Parse.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is a decoded layout description
type Document struct {
	Root   models.JSONObject
	Format string // FormatJSON or FormatYAML, never FormatAuto
}

// Parse decodes a single layout document from reader. With FormatAuto the
// format is sniffed: input starting with '{' is JSON, anything else YAML.
func Parse(reader io.Reader, format string) (Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return Document{}, errors.NewInputError("failed to read input", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if format == FormatAuto || format == "" {
		format = sniffFormat(data)
	}

	var root models.JSONValue
	switch format {
	case FormatJSON:
		root, err = decodeJSON(data)
	case FormatYAML:
		root, err = decodeYAML(data)
	default:
		return Document{}, errors.NewInputError(fmt.Sprintf("unsupported input format '%s'", format), errors.ErrUnknownFormat)
	}
	if err != nil {
		return Document{}, err
	}

	obj, ok := normalizeValue(root).(models.JSONObject)
	if !ok {
		return Document{}, errors.NewParsingError(fmt.Sprintf("layout root is %T", root), errors.ErrRootNotObject)
	}
	return Document{Root: obj, Format: format}, nil
}

func sniffFormat(data []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

func decodeJSON(data []byte) (models.JSONValue, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("failed to decode JSON", err)
	}

	// Anything but whitespace after the first value is an error.
	var trailingValue interface{}
	if err := decoder.Decode(&trailingValue); err != nil {
		if !stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
	} else {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}
	return rootValue, nil
}

func decodeYAML(data []byte) (models.JSONValue, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("YAML error: %v", err), errors.ErrInvalidYAML)
	}

	var trailingValue interface{}
	if err := decoder.Decode(&trailingValue); err == nil {
		return nil, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError(fmt.Sprintf("YAML error: %v", err), errors.ErrInvalidYAML)
	}
	return rootValue, nil
}

// normalizeValue converts raw decoded types into our model types
func normalizeValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case map[interface{}]interface{}:
		// YAML allows non-string keys
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = normalizeValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	default:
		return v // Primitives (string, number, bool, nil) are returned as is
	}
}

// ParseString parses a layout document from a string
func ParseString(input string, format string) (Document, error) {
	if strings.TrimSpace(input) == "" {
		return Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(input), format)
}

// FormatForPath picks the input format from a file extension, defaulting to auto
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// ParseFile parses a layout document from a file path. With FormatAuto the
// extension decides the format.
func ParseFile(filePath string, format string) (Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	if format == FormatAuto || format == "" {
		format = FormatForPath(filePath)
	}
	return Parse(file, format)
}
