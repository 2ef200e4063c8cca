package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const manifest = `
docblock:
  sections: [Generated file.]
namespaces:
  - name: App\Model
    uses:
      - name: App\Base\Entity
      - name: App\Base\Repository
        alias: Repo
    classes:
      - name: User
        extends: Entity
        implements: [JsonSerializable]
        accessors: true
        constants:
          - name: TABLE
            value: users
          - name: COLUMNS
            value:
              value: [id, name]
              output: single
        properties:
          - name: id
            type: int
            visibility: private
            value: 0
          - name: cache
            static: true
        methods:
          - name: find
            static: true
            parameters:
              - name: id
                type: int
              - name: fields
                default: {value: null}
            body: |
              return self::load($id);
`

func TestParse(t *testing.T) {
	f, err := New().Parse([]byte(manifest))
	require.NoError(t, err)

	require.NotNil(t, f.DocBlock)
	assert.Equal(t, []string{"Generated file."}, f.DocBlock.Sections)
	require.Len(t, f.Namespaces, 1)

	ns := f.Namespaces[0]
	assert.Equal(t, `App\Model`, ns.Name)
	assert.False(t, ns.Braced)
	require.Len(t, ns.Uses, 2)
	assert.Equal(t, "Repo", ns.Uses[1].Alias)
	require.Len(t, ns.Classes, 1)

	c := ns.Classes[0]
	assert.Equal(t, "User", c.Name)
	assert.Equal(t, "Entity", c.Extends)
	assert.Equal(t, []string{"JsonSerializable"}, c.Implements)
	assert.True(t, c.Accessors)

	require.Len(t, c.Constants, 2)
	assert.Equal(t, "users", c.Constants[0].Value.Data.Value)
	assert.Empty(t, c.Constants[0].Value.Output)
	assert.Equal(t, yaml.SequenceNode, c.Constants[1].Value.Data.Kind)
	assert.Equal(t, "single", c.Constants[1].Value.Output)

	require.Len(t, c.Properties, 2)
	assert.Equal(t, "private", c.Properties[0].Visibility)
	assert.Equal(t, "int", c.Properties[0].Type)
	assert.True(t, c.Properties[1].Static)
	assert.Nil(t, c.Properties[1].Value)

	require.Len(t, c.Methods, 1)
	m := c.Methods[0]
	assert.True(t, m.Static)
	assert.Equal(t, "return self::load($id);\n", m.Body)
	require.Len(t, m.Parameters, 2)
	assert.Nil(t, m.Parameters[0].Default)
	require.NotNil(t, m.Parameters[1].Default)
	assert.Equal(t, "!!null", m.Parameters[1].Default.Data.ShortTag())
}

func TestParseJSON(t *testing.T) {
	data := `{"classes": [{"name": "A", "constants": [{"name": "B", "value": {"x": 1, "a": 2}}]}]}`

	f, err := New().Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)

	v := f.Classes[0].Constants[0].Value
	require.Equal(t, yaml.MappingNode, v.Data.Kind)
	assert.Equal(t, "x", v.Data.Content[0].Value)
	assert.Equal(t, "a", v.Data.Content[2].Value)
}

func TestParseEmpty(t *testing.T) {
	f, err := New().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Namespaces)
	assert.Empty(t, f.Classes)
}

func TestParseUnknownKeys(t *testing.T) {
	data := []byte("classes:\n  - name: A\n    extend: B\n")

	_, err := New().Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding manifest")

	f, err := New().Lenient().Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "A", f.Classes[0].Name)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"class without name", "classes:\n  - final: true\n", "classes[0]: class name is empty"},
		{"bad class name", "classes:\n  - name: 1abc\n", `classes[0]: class name "1abc" is not a valid identifier`},
		{"bad parent", "classes:\n  - name: A\n    extends: 'B\\'\n", "classes[0]: parent"},
		{"bad interface", "interfaces:\n  - name: I-J\n", "interfaces[0]: interface name"},
		{"bad namespace", "namespaces:\n  - name: 'a\\\\b'\n", "namespaces[0]: namespace"},
		{"bad use", "namespaces:\n  - name: a\n    uses:\n      - name: ''\n", "namespaces[0].uses[0]: use"},
		{"bad alias", "namespaces:\n  - name: a\n    uses:\n      - name: b\n        alias: c d\n", "namespaces[0].uses[0]: alias"},
		{
			"constant without value",
			"classes:\n  - name: A\n    constants:\n      - name: B\n",
			"classes[0].constants[0]: constant B has no value",
		},
		{
			"property with sigil",
			"classes:\n  - name: A\n    properties:\n      - name: $b\n",
			"classes[0].properties[0]: property name",
		},
		{
			"bad parameter",
			"interfaces:\n  - name: A\n    methods:\n      - name: m\n        parameters:\n          - name: ''\n",
			"interfaces[0].methods[0].parameters[0]: parameter name is empty",
		},
		{
			"bad assign variable",
			"classes:\n  - name: A\n    methods:\n      - name: m\n        assign: {variable: 'a b', text: x}\n",
			"classes[0].methods[0].assign: variable",
		},
		{
			"nested class",
			"namespaces:\n  - name: a\n    classes:\n      - name: ''\n",
			"namespaces[0].classes[0]: class name is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidManifest))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAcceptsGlobalNamespace(t *testing.T) {
	f, err := New().Parse([]byte("namespaces:\n  - braced: true\n    classes:\n      - name: A\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Namespaces[0].Name)
	assert.True(t, f.Namespaces[0].Braced)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classes:\n  - name: A\n"), 0o644))

	f, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, "A", f.Classes[0].Name)

	_, err = New().ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("classes:\n  - name: 1\n"), 0o644))
	_, err = New().ParseFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing "+bad)
}
