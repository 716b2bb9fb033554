// Where: stackup/internal/compose/manifest.go
// What: Compose file shape validation and required-service checks.
// Why: Fail with a clear message before docker compose produces an opaque one.
package compose

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

//go:embed schema/compose.schema.json
var composeSchemaJSON string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

type stackFile struct {
	Services map[string]any `yaml:"services"`
}

// VerifyStackFile validates the compose file at path against the embedded
// schema and checks that every required service is defined.
func VerifyStackFile(path string, required []string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("compose file not found: %s", path)
		}
		return fmt.Errorf("read compose file: %w", err)
	}

	if err := validateShape(content); err != nil {
		return fmt.Errorf("invalid compose file %s: %w", path, err)
	}

	var stack stackFile
	if err := yaml.Unmarshal(content, &stack); err != nil {
		return fmt.Errorf("parse compose file %s: %w", path, err)
	}

	var missing []string
	for _, name := range required {
		if _, ok := stack.Services[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("compose file %s does not define required services: %s",
			path, strings.Join(missing, ", "))
	}
	return nil
}

func validateShape(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := sigsyaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("compose.schema.json", strings.NewReader(composeSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("compose.schema.json")
	})
	return compiledSchema, schemaErr
}
