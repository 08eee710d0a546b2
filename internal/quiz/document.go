package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Record is one question as written in a questions document.
type Record struct {
	Passage  *string  `json:"passage" yaml:"passage"`
	Question string   `json:"question" yaml:"question"`
	Choices  []string `json:"choices" yaml:"choices"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// DocumentSection keeps the records of one section in source order.
type DocumentSection struct {
	Key     string
	Records []Record
}

// Document is a decoded questions file: section keys mapped to ordered
// question lists. Sections keep the order they appear in the source.
type Document struct {
	Sections []DocumentSection
}

// FormatForPath picks the decoder from a file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadDocument reads and decodes a questions file.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read questions file: %w", err)
	}
	return ParseDocument(data, FormatForPath(path))
}

// ParseDocument decodes a questions document in the given format.
func ParseDocument(data []byte, format Format) (Document, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = parseYAMLDocument(data)
	case FormatJSON, "":
		doc, err = parseJSONDocument(data)
	default:
		return Document{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidDocument, format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Count returns the number of question records across all sections.
func (d Document) Count() int {
	total := 0
	for _, section := range d.Sections {
		total += len(section.Records)
	}
	return total
}

// Questions flattens the document into store-ready questions, tagging each
// with its section key.
func (d Document) Questions() ([]Question, error) {
	questions := make([]Question, 0, d.Count())
	for _, section := range d.Sections {
		if section.Key == "" {
			return nil, fmt.Errorf("%w: empty section key", ErrInvalidDocument)
		}
		for idx, record := range section.Records {
			if record.Question == "" {
				return nil, fmt.Errorf("%w: section %q question %d: question text is required", ErrInvalidDocument, section.Key, idx)
			}
			if record.Answer == "" {
				return nil, fmt.Errorf("%w: section %q question %d: answer is required", ErrInvalidDocument, section.Key, idx)
			}

			choices := record.Choices
			if choices == nil {
				choices = []string{}
			}
			questions = append(questions, Question{
				Section:  section.Key,
				Passage:  record.Passage,
				Question: record.Question,
				Choices:  choices,
				Answer:   record.Answer,
			})
		}
	}
	return questions, nil
}

// set replaces the records of an existing key in place, matching how a JSON
// object with a repeated key resolves to its last value.
func (d *Document) set(key string, records []Record, index map[string]int) {
	if pos, ok := index[key]; ok {
		d.Sections[pos].Records = records
		return
	}
	index[key] = len(d.Sections)
	d.Sections = append(d.Sections, DocumentSection{Key: key, Records: records})
}

func parseJSONDocument(data []byte) (Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return Document{}, errors.New("parse json: top level must be an object of sections")
	}

	var doc Document
	index := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return Document{}, fmt.Errorf("parse json: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return Document{}, fmt.Errorf("parse json: unexpected token %v", token)
		}

		var records []Record
		if err := decoder.Decode(&records); err != nil {
			return Document{}, fmt.Errorf("parse json: section %q: %w", key, err)
		}
		doc.set(key, records, index)
	}

	if _, err := decoder.Token(); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return Document{}, errors.New("parse json: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&root); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, errors.New("parse yaml: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}

	mapping := &root
	if mapping.Kind == yaml.DocumentNode && len(mapping.Content) == 1 {
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return Document{}, errors.New("parse yaml: top level must be a mapping of sections")
	}

	var doc Document
	index := make(map[string]int)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return Document{}, fmt.Errorf("parse yaml: line %d: section key must be a string", keyNode.Line)
		}

		var records []Record
		if err := valueNode.Decode(&records); err != nil {
			return Document{}, fmt.Errorf("parse yaml: section %q: %w", keyNode.Value, err)
		}
		doc.set(keyNode.Value, records, index)
	}
	return doc, nil
}
