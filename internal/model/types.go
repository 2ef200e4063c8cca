// Package model defines the manifest that describes a PHP file to generate.
package model

import (
	"gopkg.in/yaml.v3"
)

// File represents a parsed manifest.
type File struct {
	Path       string      `yaml:"-"`          // Manifest path, empty when parsed from memory
	DocBlock   *DocBlock   `yaml:"docblock"`   // File-level comment
	Namespaces []Namespace `yaml:"namespaces"` // Namespaces (exclusive with Classes/Interfaces)
	Classes    []Class     `yaml:"classes"`    // Classes in the global scope
	Interfaces []Interface `yaml:"interfaces"` // Interfaces in the global scope
}

// DocBlock represents a /** ... */ comment.
type DocBlock struct {
	Sections    []string `yaml:"sections"`    // Free-text sections
	Annotations []string `yaml:"annotations"` // Lines such as "@return int"
}

// Namespace represents a namespace declaration.
type Namespace struct {
	Name       string      `yaml:"name"`   // Empty for the global namespace
	Braced     bool        `yaml:"braced"` // Use "namespace X { }" syntax
	Uses       []Use       `yaml:"uses"`
	Classes    []Class     `yaml:"classes"`
	Interfaces []Interface `yaml:"interfaces"`
}

// Use represents a use statement.
type Use struct {
	Name  string `yaml:"name"`  // Fully qualified name
	Alias string `yaml:"alias"` // Optional alias
}

// Class represents a class declaration.
type Class struct {
	Name       string     `yaml:"name"`
	Extends    string     `yaml:"extends"`
	Implements []string   `yaml:"implements"`
	Abstract   bool       `yaml:"abstract"`
	Final      bool       `yaml:"final"`
	Accessors  bool       `yaml:"accessors"` // Add getters and setters for non-static properties
	DocBlock   *DocBlock  `yaml:"docblock"`
	Constants  []Constant `yaml:"constants"`
	Properties []Property `yaml:"properties"`
	Methods    []Method   `yaml:"methods"`
}

// Interface represents an interface declaration.
type Interface struct {
	Name      string     `yaml:"name"`
	Extends   []string   `yaml:"extends"`
	DocBlock  *DocBlock  `yaml:"docblock"`
	Constants []Constant `yaml:"constants"`
	Methods   []Method   `yaml:"methods"`
}

// Constant represents a class or interface constant.
type Constant struct {
	Name     string    `yaml:"name"`
	Value    *Value    `yaml:"value"`
	DocBlock *DocBlock `yaml:"docblock"`
}

// Property represents a class property.
type Property struct {
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type"`       // Documented type, used for @var and accessor comments
	Visibility string    `yaml:"visibility"` // public, protected (default) or private
	Static     bool      `yaml:"static"`
	Value      *Value    `yaml:"value"`
	DocBlock   *DocBlock `yaml:"docblock"`
}

// Method represents a class or interface method.
type Method struct {
	Name       string      `yaml:"name"`
	Visibility string      `yaml:"visibility"` // public (default), protected or private
	Static     bool        `yaml:"static"`
	Abstract   bool        `yaml:"abstract"`
	Final      bool        `yaml:"final"`
	Parameters []Parameter `yaml:"parameters"`
	Body       string      `yaml:"body"`   // Statements; leading tabs are indent levels
	Assign     *Assign     `yaml:"assign"` // Text built into a variable after Body
	DocBlock   *DocBlock   `yaml:"docblock"`
}

// Assign describes a block of text assigned to a variable line by line.
type Assign struct {
	Variable string `yaml:"variable"`
	Text     string `yaml:"text"`
}

// Parameter represents a method parameter.
type Parameter struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`    // Type hint
	Default *Value `yaml:"default"` // Default value
}

// Value represents a literal. In a manifest it is either written directly
// (shorthand) or as a mapping with a "value" key and optional "type" and
// "output" keys.
type Value struct {
	Data   yaml.Node // The literal as decoded, key order preserved
	Type   string    // Value kind name, empty to derive it from Data
	Output string    // Array layout: "multi" (default) or "single"
}

type valueForm struct {
	Value  yaml.Node `yaml:"value"`
	Type   string    `yaml:"type"`
	Output string    `yaml:"output"`
}

var valueKeys = map[string]bool{"value": true, "type": true, "output": true}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if isValueForm(node) {
		var form valueForm
		if err := node.Decode(&form); err != nil {
			return err
		}
		v.Data, v.Type, v.Output = form.Value, form.Type, form.Output
		return nil
	}
	v.Data = *node
	return nil
}

// isValueForm reports whether node is a mapping holding a "value" key and
// no keys other than value, type and output.
func isValueForm(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	hasValue := false
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !valueKeys[key] {
			return false
		}
		if key == "value" {
			hasValue = true
		}
	}
	return hasValue
}
