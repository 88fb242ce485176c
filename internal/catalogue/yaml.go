package catalogue

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/animalobj/internal/creature"
	"github.com/Faultbox/animalobj/pkg/math"
)

//go:embed template.schema.json
var templateSchemaJSON string

var compileTemplateSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("template.schema.json", strings.NewReader(templateSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile("template.schema.json")
})

// fileDoc is the top-level layout of a catalogue file.
type fileDoc struct {
	Templates []yaml.Node `yaml:"templates"`
}

type vec3Doc [3]float64

func (v vec3Doc) vec() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

type blockDoc struct {
	Size   vec3Doc `yaml:"size"`
	Offset vec3Doc `yaml:"offset"`
}

type legsDoc struct {
	Blocks   []blockDoc `yaml:"blocks"`
	OffsetFL vec3Doc    `yaml:"offset_fl"`
	PivotY   float64    `yaml:"pivot_y"`
}

type templateDoc struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Body       []blockDoc `yaml:"body"`
	Head       []blockDoc `yaml:"head"`
	Tail       []blockDoc `yaml:"tail"`
	Decoration []blockDoc `yaml:"decoration"`
	Legs       *legsDoc   `yaml:"legs"`
}

// blocks converts a block list, keeping nil for an absent list.
func blocks(in []blockDoc) []creature.Block {
	if in == nil {
		return nil
	}
	out := make([]creature.Block, len(in))
	for i, b := range in {
		out[i] = creature.Block{Size: b.Size.vec(), Offset: b.Offset.vec()}
	}
	return out
}

func (d *templateDoc) template() *creature.Template {
	t := &creature.Template{
		ID:         d.ID,
		Name:       d.Name,
		Body:       blocks(d.Body),
		Head:       blocks(d.Head),
		Tail:       blocks(d.Tail),
		Decoration: blocks(d.Decoration),
	}
	if d.Legs != nil {
		t.Legs = &creature.LegConfig{
			Blocks:   blocks(d.Legs.Blocks),
			OffsetFL: d.Legs.OffsetFL.vec(),
			PivotY:   d.Legs.PivotY,
		}
	}
	return t
}

// Load reads a YAML catalogue. Each entry is checked against the template
// schema; entries that fail keep their place in the catalogue and are
// reported by Lookup. Entries without an id and duplicate ids fail the load.
func Load(r io.Reader) (*Static, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}

	schema, err := compileTemplateSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling template schema: %w", err)
	}

	s := newStatic()
	for i := range doc.Templates {
		node := &doc.Templates[i]

		var raw interface{}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("template #%d (line %d): %w", i+1, node.Line, err)
		}
		id := rawID(raw)
		if id == "" {
			return nil, fmt.Errorf("template #%d (line %d): %w", i+1, node.Line, ErrNoID)
		}
		if err := s.add(id); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		if reason := validateRaw(schema, raw); reason != "" {
			s.invalid[id] = &MalformedError{TemplateID: id, Reason: reason}
			continue
		}

		var td templateDoc
		if err := node.Decode(&td); err != nil {
			s.invalid[id] = &MalformedError{TemplateID: id, Reason: err.Error()}
			continue
		}
		s.templates[id] = td.template()
	}

	return s, nil
}

// LoadFile reads a YAML catalogue from disk.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalogue: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func rawID(raw interface{}) string {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["id"].(string)
	return id
}

// validateRaw checks a decoded YAML entry against the schema and returns a
// one-line reason, or "" when the entry is valid.
func validateRaw(schema *jsonschema.Schema, raw interface{}) string {
	// Round-trip through JSON so the validator sees JSON types
	b, err := json.Marshal(raw)
	if err != nil {
		return err.Error()
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err.Error()
	}

	err = schema.Validate(v)
	if err == nil {
		return ""
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	var msgs []string
	collectSchemaErrors(ve, &msgs)
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
