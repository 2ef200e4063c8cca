package php

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"phpgen/internal/config"
)

// SectionWidth is the column at which single-line sections are wrapped.
const SectionWidth = 75

// DocBlock is a /** ... */ comment made of free-text sections followed by
// annotation lines. Sections and annotations are unique by content.
type DocBlock struct {
	sections    stringSet
	annotations stringSet
}

// NewDocBlock creates an empty DocBlock.
func NewDocBlock() *DocBlock {
	return &DocBlock{}
}

// SetSections replaces all sections.
func (d *DocBlock) SetSections(sections ...string) *DocBlock {
	d.sections.set(sections)
	return d
}

// Sections returns the sections in insertion order.
func (d *DocBlock) Sections() []string {
	return d.sections.values()
}

// AddSection adds a section unless an equal one exists.
func (d *DocBlock) AddSection(section string) *DocBlock {
	d.sections.add(section)
	return d
}

// RemoveSection removes the section with the given content.
func (d *DocBlock) RemoveSection(section string) *DocBlock {
	d.sections.delete(section)
	return d
}

// SetAnnotations replaces all annotations.
func (d *DocBlock) SetAnnotations(annotations ...string) *DocBlock {
	d.annotations.set(annotations)
	return d
}

// Annotations returns the annotations in insertion order.
func (d *DocBlock) Annotations() []string {
	return d.annotations.values()
}

// AddAnnotation adds an annotation such as "@return string" unless an equal
// one exists.
func (d *DocBlock) AddAnnotation(annotation string) *DocBlock {
	d.annotations.add(annotation)
	return d
}

// RemoveAnnotation removes the annotation with the given content.
func (d *DocBlock) RemoveAnnotation(annotation string) *DocBlock {
	d.annotations.delete(annotation)
	return d
}

func (d *DocBlock) Render() (string, error) { return d.RenderWith(nil) }
func (d *DocBlock) String() string          { return stringify(d) }

// RenderWith writes the comment. It ends with a newline.
func (d *DocBlock) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	nl := f.Newline
	hasSections := d.sections.len() > 0
	hasAnnotations := d.annotations.len() > 0

	var b strings.Builder
	b.WriteString("/**" + nl)
	d.writeSections(&b, nl)
	if hasSections && hasAnnotations {
		b.WriteString(" *" + nl)
	}
	for _, a := range d.annotations.values() {
		b.WriteString(" * " + a + nl)
	}
	if !hasSections && !hasAnnotations {
		b.WriteString(" *" + nl)
	}
	b.WriteString(" */" + nl)

	return b.String(), nil
}

func (d *DocBlock) writeSections(b *strings.Builder, nl string) {
	for i, section := range d.sections.values() {
		if i > 0 {
			b.WriteString(" *" + nl)
		}

		trimmed := section
		var lines []string
		if nl != "" {
			trimmed = strings.Trim(section, nl)
			lines = strings.Split(trimmed, nl)
		}
		if len(lines) <= 1 {
			wrapped := wordwrap.WrapString(trimmed, SectionWidth)
			b.WriteString(" * " + strings.ReplaceAll(wrapped, "\n", nl+" * ") + nl)
			continue
		}
		for _, line := range lines {
			b.WriteString(" * " + line + nl)
		}
	}
}
