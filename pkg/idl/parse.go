package idl

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// IDL attribute namespaces. Object-shape, persistence, and reporting-label
// attributes each live in their own namespace.
const (
	nsBase     = "http://opensrf.org/spec/IDL/base/v1"
	nsObj      = "http://open-ils.org/spec/opensrf/IDL/objects/v1"
	nsPersist  = "http://open-ils.org/spec/opensrf/IDL/persistence/v1"
	nsReporter = "http://open-ils.org/spec/opensrf/IDL/reporter/v1"
)

// autoFields are the bookkeeping fields appended to every class after its
// declared fields, in this order, regardless of the IDL source.
var autoFields = [3]string{"isnew", "ischanged", "isdeleted"}

// XML shapes for decoding. Attribute names are qualified with their
// namespace URL so encoding/xml resolves the IDL prefixes.

type xmlIDL struct {
	XMLName xml.Name   `xml:"IDL"`
	Classes []xmlClass `xml:"class"`
}

type xmlClass struct {
	ID     string    `xml:"id,attr"`
	Table  string    `xml:"http://open-ils.org/spec/opensrf/IDL/persistence/v1 tablename,attr"`
	Label  string    `xml:"http://open-ils.org/spec/opensrf/IDL/reporter/v1 label,attr"`
	Fields xmlFields `xml:"fields"`
	Links  []xmlLink `xml:"links>link"`
}

type xmlFields struct {
	Primary  string     `xml:"http://open-ils.org/spec/opensrf/IDL/persistence/v1 primary,attr"`
	Sequence string     `xml:"http://open-ils.org/spec/opensrf/IDL/persistence/v1 sequence,attr"`
	Fields   []xmlField `xml:"field"`
}

type xmlField struct {
	Name     string `xml:"name,attr"`
	Label    string `xml:"http://open-ils.org/spec/opensrf/IDL/reporter/v1 label,attr"`
	Datatype string `xml:"http://open-ils.org/spec/opensrf/IDL/reporter/v1 datatype,attr"`
	I18N     string `xml:"http://open-ils.org/spec/opensrf/IDL/persistence/v1 i18n,attr"`
	Virtual  string `xml:"http://open-ils.org/spec/opensrf/IDL/persistence/v1 virtual,attr"`
}

type xmlLink struct {
	Field   string `xml:"field,attr"`
	RelType string `xml:"reltype,attr"`
	Key     string `xml:"key,attr"`
	Map     string `xml:"map,attr"`
	Class   string `xml:"class,attr"`
}

// ParseFile reads and parses an IDL XML file.
func ParseFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSchemaParse, err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseString parses an IDL XML document held in a string.
func ParseString(xmlText string) (*Registry, error) {
	return Parse(strings.NewReader(xmlText))
}

// Parse reads an IDL XML document and builds a Registry. The result is
// self-contained and never mutated after Parse returns.
func Parse(r io.Reader) (*Registry, error) {
	var doc xmlIDL
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSchemaParse, err)
	}

	reg := &Registry{classes: make(map[string]*Class, len(doc.Classes))}
	for i := range doc.Classes {
		class, err := buildClass(&doc.Classes[i])
		if err != nil {
			return nil, err
		}
		reg.classes[class.Name] = class
	}
	return reg, nil
}

func buildClass(node *xmlClass) (*Class, error) {
	if node.ID == "" {
		return nil, fmt.Errorf("%w: class node has no id attribute", types.ErrSchemaParse)
	}

	label := node.Label
	if label == "" {
		label = node.ID
	}

	class := &Class{
		Name:         node.ID,
		Label:        label,
		Table:        node.Table,
		Pkey:         node.Fields.Primary,
		PkeySequence: node.Fields.Sequence,
		Fields:       make(map[string]*Field, len(node.Fields.Fields)+len(autoFields)),
		Links:        make(map[string]*Link, len(node.Links)),
	}

	pos := 0
	for i := range node.Fields.Fields {
		field, err := buildField(node.ID, pos, &node.Fields.Fields[i])
		if err != nil {
			return nil, err
		}
		class.Fields[field.Name] = field
		pos++
	}

	// Bookkeeping fields continue the position sequence.
	for _, name := range autoFields {
		class.Fields[name] = &Field{
			Name:     name,
			Label:    name,
			Datatype: DataTypeBool,
			Virtual:  true,
			Position: pos,
		}
		pos++
	}

	for i := range node.Links {
		link, err := buildLink(node.ID, &node.Links[i])
		if err != nil {
			return nil, err
		}
		class.Links[link.Field] = link
	}

	return class, nil
}

func buildField(class string, pos int, node *xmlField) (*Field, error) {
	if node.Name == "" {
		return nil, fmt.Errorf(
			"%w: field node in class %q has no name attribute", types.ErrSchemaParse, class)
	}
	return &Field{
		Name:     node.Name,
		Label:    node.Label,
		Datatype: dataTypeFromString(node.Datatype),
		I18N:     node.I18N == "true",
		Virtual:  node.Virtual == "true",
		Position: pos,
	}, nil
}

func buildLink(class string, node *xmlLink) (*Link, error) {
	if node.Field == "" || node.Key == "" || node.Class == "" {
		return nil, fmt.Errorf(
			"%w: link node in class %q is missing field, key, or class", types.ErrSchemaParse, class)
	}
	return &Link{
		Field:   node.Field,
		RelType: relTypeFromString(node.RelType),
		Key:     node.Key,
		Map:     node.Map,
		Class:   node.Class,
	}, nil
}
