package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

//go:embed schemas/*.schema.json
var embedded embed.FS

// Schema names a JSON schema. The document is read from
// schemas/<name>.schema.json.
type Schema string

const (
	SchemaConfiguration Schema = "configuration"
	SchemaCartSnapshot  Schema = "cart_snapshot"
	SchemaFrames        Schema = "frames"
	SchemaMats          Schema = "mats"
	SchemaGlass         Schema = "glass"
	SchemaPricing       Schema = "pricing"
)

// AllSchemas lists every schema compiled into the binary.
var AllSchemas = []Schema{
	SchemaConfiguration,
	SchemaCartSnapshot,
	SchemaFrames,
	SchemaMats,
	SchemaGlass,
	SchemaPricing,
}

func (s Schema) file() string { return "schemas/" + string(s) + ".schema.json" }

// SchemaValidator checks JSON documents against named schemas. Data that
// parses but violates the schema yields a *SchemaError, which matches
// domain.ErrValidation.
type SchemaValidator interface {
	ValidateBytes(data []byte, schema Schema) error
	// Preload compiles schemas up front so a broken one fails at startup.
	Preload(schemas ...Schema) error
}

type validator struct {
	fsys fs.FS

	mu       sync.Mutex
	compiler *jsonschema.Compiler
	compiled map[Schema]*jsonschema.Schema
}

// NewSchemaValidator validates against the schemas embedded in the binary.
func NewSchemaValidator() SchemaValidator {
	return NewSchemaValidatorFS(embedded)
}

// NewSchemaValidatorFS reads schemas from fsys instead.
func NewSchemaValidatorFS(fsys fs.FS) SchemaValidator {
	return &validator{
		fsys:     fsys,
		compiler: jsonschema.NewCompiler(),
		compiled: make(map[Schema]*jsonschema.Schema),
	}
}

func (v *validator) ValidateBytes(data []byte, schema Schema) error {
	sch, err := v.load(schema)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", schema, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &SchemaError{Schema: schema, cause: fmt.Errorf("parse JSON: %w", err)}
	}
	if err := sch.Validate(doc); err != nil {
		return newSchemaError(schema, err)
	}
	return nil
}

func (v *validator) Preload(schemas ...Schema) error {
	var errs []error
	for _, s := range schemas {
		if _, err := v.load(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.file(), err))
		}
	}
	return errors.Join(errs...)
}

func (v *validator) load(schema Schema) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if sch, ok := v.compiled[schema]; ok {
		return sch, nil
	}

	raw, err := fs.ReadFile(v.fsys, schema.file())
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := v.compiler.AddResource(schema.file(), doc); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	sch, err := v.compiler.Compile(schema.file())
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	v.compiled[schema] = sch
	return sch, nil
}

// Violation is one failed keyword at one location in the document.
type Violation struct {
	Path    string
	Keyword string
}

func (v Violation) String() string {
	if v.Keyword == "" {
		return "at " + v.Path + ": validation failed"
	}
	return "at " + v.Path + ": " + v.Keyword + " validation failed"
}

// SchemaError reports why a document was rejected.
type SchemaError struct {
	Schema     Schema
	Violations []Violation
	cause      error
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s: %s: %v", domain.ErrValidation, e.Schema, e.cause)
	}
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = "  - " + v.String()
	}
	return fmt.Sprintf("%s: %s schema:\n%s", domain.ErrValidation, e.Schema, strings.Join(lines, "\n"))
}

func (e *SchemaError) Unwrap() []error {
	return []error{domain.ErrValidation, e.cause}
}

func newSchemaError(schema Schema, err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &SchemaError{Schema: schema, cause: err}
	}
	e := &SchemaError{Schema: schema, cause: err}
	collect(verr, &e.Violations)
	return e
}

// collect walks the cause tree depth first. Only leaves are recorded since
// their parents just summarise them.
func collect(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) > 0 {
		for _, c := range err.Causes {
			collect(c, out)
		}
		return
	}

	path := "/" + strings.Join(err.InstanceLocation, "/")
	if len(err.InstanceLocation) == 0 {
		path = "(root)"
	}
	var keyword string
	if err.ErrorKind != nil {
		keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
	}
	*out = append(*out, Violation{Path: path, Keyword: keyword})
}
