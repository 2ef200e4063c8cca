package generator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"phpgen/internal/config"
	"phpgen/internal/model"
	"phpgen/internal/parser"
	"phpgen/internal/php"
)

func newConfig() *config.Config {
	cfg := config.New()
	cfg.Format = config.Format{Newline: "\n", IndentString: "\t"}
	return cfg
}

func parse(t *testing.T, manifest string) *model.File {
	t.Helper()
	f, err := parser.New().Parse([]byte(manifest))
	require.NoError(t, err)
	return f
}

func generate(t *testing.T, cfg *config.Config, manifest string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(cfg, zap.NewNop().Sugar()).Generate(parse(t, manifest), &buf))
	return buf.String()
}

const userManifest = `
namespaces:
  - name: App\Model
    uses:
      - name: App\Base\Entity
    classes:
      - name: User
        extends: Entity
        accessors: true
        constants:
          - name: TABLE
            value: users
        properties:
          - name: user_name
            type: string
            visibility: private
        methods:
          - name: find
            static: true
            parameters:
              - name: id
              - name: options
                type: array
                default: []
            body: "if ($id < 1) {\n\treturn null;\n}\nreturn new self();\n"
`

func TestGenerate(t *testing.T) {
	want := "<?php\n" +
		"\n" +
		"namespace App\\Model;\n" +
		"\n" +
		"use App\\Base\\Entity;\n" +
		"\n" +
		"class User extends Entity {\n" +
		"\n" +
		"\tconst TABLE = 'users';\n" +
		"\n" +
		"\t/**\n" +
		"\t * @var string\n" +
		"\t */\n" +
		"\tprivate $user_name;\n" +
		"\n" +
		"\tpublic static function find($id, array $options = array()) {\n" +
		"\n" +
		"\t\tif ($id < 1) {\n" +
		"\t\t\treturn null;\n" +
		"\t\t}\n" +
		"\t\treturn new self();\n" +
		"\t}\n" +
		"\n" +
		"\t/**\n" +
		"\t * @return string\n" +
		"\t */\n" +
		"\tpublic function getUserName() {\n" +
		"\n" +
		"\t\treturn $this->user_name;\n" +
		"\t}\n" +
		"\n" +
		"\t/**\n" +
		"\t * @param string $userName\n" +
		"\t * @return $this\n" +
		"\t */\n" +
		"\tpublic function setUserName($userName) {\n" +
		"\n" +
		"\t\t$this->user_name = $userName;\n" +
		"\t\treturn $this;\n" +
		"\t}\n" +
		"}\n"

	assert.Equal(t, want, generate(t, newConfig(), userManifest))
}

func TestGenerateUsesConfiguredFormat(t *testing.T) {
	cfg := newConfig()
	cfg.Format = config.Format{Newline: "\r\n", IndentString: "    "}

	out := generate(t, cfg, userManifest)
	lf := generate(t, newConfig(), userManifest)

	assert.Equal(t, strings.ReplaceAll(strings.ReplaceAll(lf, "\t", "    "), "\n", "\r\n"), out)
}

func TestGenerateTypeFilters(t *testing.T) {
	manifest := `
classes:
  - name: A
  - name: B
  - name: Internal
interfaces:
  - name: IA
`
	cfg := newConfig()
	cfg.Options.ExcludeTypes = []string{"Internal"}
	assert.Equal(t, "<?php\n\nclass A {}\n\nclass B {}\n\ninterface IA {}\n", generate(t, cfg, manifest))

	cfg = newConfig()
	cfg.Options.IncludeTypes = []string{"B", "IA"}
	assert.Equal(t, "<?php\n\nclass B {}\n\ninterface IA {}\n", generate(t, cfg, manifest))
}

func TestGenerateGlobalAccessorsOption(t *testing.T) {
	manifest := `
classes:
  - name: A
    properties:
      - name: id
      - name: count
        static: true
    methods:
      - name: getId
        body: return 1;
`
	cfg := newConfig()
	cfg.Options.Accessors = true

	want := "<?php\n" +
		"\n" +
		"class A {\n" +
		"\n" +
		"\tprotected $id;\n" +
		"\n" +
		"\tprotected static $count;\n" +
		"\n" +
		"\tpublic function getId() {\n" +
		"\n" +
		"\t\treturn 1;\n" +
		"\t}\n" +
		"\n" +
		"\tpublic function setId($id) {\n" +
		"\n" +
		"\t\t$this->id = $id;\n" +
		"\t\treturn $this;\n" +
		"\t}\n" +
		"}\n"
	assert.Equal(t, want, generate(t, cfg, manifest))
}

func TestGenerateInterface(t *testing.T) {
	manifest := `
namespaces:
  - name: App
    braced: true
    interfaces:
      - name: Repository
        extends: [Countable]
        docblock:
          sections: [Stores entities.]
        constants:
          - name: LIMIT
            value: 10
        methods:
          - name: find
            parameters:
              - name: id
                type: int
`
	want := "<?php\n" +
		"\n" +
		"namespace App {\n" +
		"\n" +
		"\t/**\n" +
		"\t * Stores entities.\n" +
		"\t */\n" +
		"\tinterface Repository extends Countable {\n" +
		"\n" +
		"\t\tconst LIMIT = 10;\n" +
		"\n" +
		"\t\tpublic function find(int $id);\n" +
		"\t}\n" +
		"}\n"
	assert.Equal(t, want, generate(t, newConfig(), manifest))
}

func TestGenerateValues(t *testing.T) {
	manifest := `
classes:
  - name: A
    constants:
      - name: B
        value: !const self::A
    properties:
      - name: map
        value:
          value: {b: 1, a: [x, !raw PHP_EOL], 3: ~}
          output: single
      - name: obj
        value: !Point {x: 1}
      - name: flag
        value:
          value: 1
          type: boolean
`
	want := "<?php\n" +
		"\n" +
		"class A {\n" +
		"\n" +
		"\tconst B = self::A;\n" +
		"\n" +
		"\tprotected $map = array('b' => 1, 'a' => array(0 => 'x', 1 => PHP_EOL), 3 => null);\n" +
		"\n" +
		"\tprotected $obj = Point::__set_state(array(\n" +
		"\t\t'x' => 1\n" +
		"\t));\n" +
		"\n" +
		"\tprotected $flag = true;\n" +
		"}\n"
	assert.Equal(t, want, generate(t, newConfig(), manifest))
}

func TestGenerateAssign(t *testing.T) {
	manifest := `
classes:
  - name: A
    methods:
      - name: html
        body: "$id = 1;"
        assign:
          variable: html
          text: "<div>\n  <p>x</p>\n</div>\n"
`
	want := "<?php\n" +
		"\n" +
		"class A {\n" +
		"\n" +
		"\tpublic function html() {\n" +
		"\n" +
		"\t\t$id = 1;\n" +
		"\t\t$html  = '<div>' . \"\\n\";\n" +
		"\t\t$html .= '  <p>x</p>' . \"\\n\";\n" +
		"\t\t$html .= '</div>';\n" +
		"\t}\n" +
		"}\n"
	assert.Equal(t, want, generate(t, newConfig(), manifest))
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		target   error
		message  string
	}{
		{
			"unknown visibility",
			"classes:\n  - name: A\n    properties:\n      - name: b\n        visibility: internal\n",
			php.ErrUnrecognizedVisibility,
			"class A: property $b",
		},
		{
			"unknown kind",
			"classes:\n  - name: A\n    constants:\n      - name: B\n        value: {value: 1, type: decimal}\n",
			php.ErrUnrecognizedEnum,
			"class A: constant B",
		},
		{
			"unknown output",
			"interfaces:\n  - name: A\n    methods:\n      - name: m\n        parameters:\n          - name: p\n            default: {value: [], output: wide}\n",
			php.ErrUnrecognizedArrayOutput,
			"interface A: method m: parameter $p",
		},
		{
			"abstract final class",
			"classes:\n  - name: A\n    abstract: true\n    final: true\n",
			php.ErrConstraintViolation,
			"rendering",
		},
		{
			"namespaces mixed with classes",
			"namespaces:\n  - name: a\nclasses:\n  - name: B\n",
			php.ErrMixedNamespaceAndTypes,
			"rendering",
		},
		{
			"interface method with body",
			"interfaces:\n  - name: A\n    methods:\n      - name: m\n        body: return;\n",
			php.ErrConstraintViolation,
			"interface A: method m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := New(newConfig(), nil).Generate(parse(t, tt.manifest), &buf)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
			assert.Contains(t, err.Error(), tt.message)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestBuild(t *testing.T) {
	f := parse(t, userManifest)

	tree, err := New(nil, nil).Build(f)
	require.NoError(t, err)
	require.Len(t, tree.Namespaces(), 1)

	ns := tree.Namespaces()[0]
	assert.Equal(t, `App\Model`, ns.Name())
	require.Len(t, ns.Classes(), 1)

	cls := ns.Classes()[0]
	names := make([]string, 0, len(cls.Methods()))
	for _, m := range cls.Methods() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"find", "getUserName", "setUserName"}, names)
	assert.Equal(t, php.VisibilityPrivate, cls.Properties()[0].Visibility())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerateWriteError(t *testing.T) {
	err := New(newConfig(), nil).Generate(parse(t, "classes:\n  - name: A\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output: disk full")
}

func TestGenerateExampleManifest(t *testing.T) {
	f, err := parser.New().ParseFile("../../examples/manifest.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(newConfig(), nil).Generate(f, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?php\n/**\n * Domain models for the shop.\n *\n * @generated by phpgen\n */\nnamespace Shop\\Model {\n"))
	assert.Contains(t, out, "\tuse Shop\\Base\\Repository as BaseRepository;\n")
	assert.Contains(t, out, "\t\tconst ROLES = array('admin' => 1, 'editor' => 2, 'viewer' => self::DEFAULT_ROLE);\n")
	assert.Contains(t, out, "\t\tprotected static $instances = 0;\n")
	assert.Contains(t, out, "\t\t\treturn array(\n\t\t\t\t'id' => $this->id,\n")
	assert.Contains(t, out, "\t\t\t$text  = 'User record' . \"\\n\";\n\t\t\t$text .= '  stored in the users table';\n")
	assert.Contains(t, out, "\t\tpublic function setEmail($email) {\n")
	assert.NotContains(t, out, "getInstances")
	assert.Contains(t, out, "\tinterface UserRepository extends BaseRepository {\n\n\t\tpublic function findByEmail($email);\n\t}\n")
}
