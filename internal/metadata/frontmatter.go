package metadata

import (
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)

// Split separates a note's leading front-matter block from its body. The
// returned front-matter excludes the fences; body is everything after them.
func Split(data []byte) (fm, body []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

// Parse decodes a note into its front-matter record and body. Notes without
// front-matter yield a nil record. Malformed YAML is reported as an error so
// callers can decide whether to treat it as missing metadata.
func Parse(data []byte) (*Record, []byte, error) {
	fm, body := Split(data)
	if len(fm) == 0 {
		return nil, body, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, body, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, body, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, body, nil
	}

	rec := NewRecord()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]
		rec.Set(keyNode.Value, fromNode(valueNode))
	}
	return rec, body, nil
}

func fromNode(node *yaml.Node) Value {
	switch node.Kind {
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			items = append(items, fromNode(child))
		}
		return List(items...)
	case yaml.ScalarNode:
		return fromScalar(node)
	case yaml.AliasNode:
		if node.Alias != nil {
			return fromNode(node.Alias)
		}
		return Value{}
	case yaml.MappingNode:
		var m map[string]interface{}
		if err := node.Decode(&m); err != nil {
			return Text(node.Value)
		}
		return FromAny(m)
	default:
		return Value{}
	}
}

func fromScalar(node *yaml.Node) Value {
	switch node.Tag {
	case "!!null":
		return Value{}
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Text(node.Value)
		}
		return Bool(b)
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Text(node.Value)
		}
		return Number(n)
	default:
		return Text(node.Value)
	}
}
