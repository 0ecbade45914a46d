package catalog

import (
	"gopkg.in/yaml.v3"
)

// Profile is a named preset for a processing operation. The raw document
// node is retained so a later save reproduces the entry exactly as it was
// loaded, unknown keys and key order included.
type Profile struct {
	Operation   string
	Parameters  interface{}
	Description string

	node *yaml.Node
}

// HasField reports whether the profile's document entry carried the key at
// all. Validation is presence-based: the value may be of any shape,
// including null.
func (p *Profile) HasField(key string) bool {
	return findMapValue(p.node, key) != nil
}

// WorkflowStep is one entry of a workflow's job list. Keys other than the
// profile reference are overrides interpreted by the service; they are
// preserved in the backing document but opaque here.
type WorkflowStep struct {
	Profile string
}

// Workflow is a named ordered list of processing steps. Step order is the
// document order; whether the service runs steps sequentially is its own
// concern.
type Workflow struct {
	Description string
	Jobs        []WorkflowStep

	node *yaml.Node
}

// resolveAlias follows YAML anchors so walks below always see the real node
func resolveAlias(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

// findMapValue returns the value node for key in a mapping node, or nil
func findMapValue(n *yaml.Node, key string) *yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

// profileFromNode builds the typed view of a profile entry. Field decoding
// is best effort: a field of an unexpected shape keeps its zero value while
// the raw node still round-trips it.
func profileFromNode(n *yaml.Node) *Profile {
	p := &Profile{node: n}
	if v := findMapValue(n, "operation"); v != nil {
		_ = v.Decode(&p.Operation)
	}
	if v := findMapValue(n, "parameters"); v != nil {
		_ = v.Decode(&p.Parameters)
	}
	if v := findMapValue(n, "description"); v != nil {
		_ = v.Decode(&p.Description)
	}
	return p
}

// workflowFromNode builds the typed view of a workflow entry
func workflowFromNode(n *yaml.Node) *Workflow {
	w := &Workflow{node: n}
	if v := findMapValue(n, "description"); v != nil {
		_ = v.Decode(&w.Description)
	}
	jobs := findMapValue(n, "jobs")
	if jobs == nil || jobs.Kind != yaml.SequenceNode {
		return w
	}
	for _, stepNode := range jobs.Content {
		var step WorkflowStep
		if v := findMapValue(stepNode, "profile"); v != nil {
			_ = v.Decode(&step.Profile)
		}
		w.Jobs = append(w.Jobs, step)
	}
	return w
}

// newProfileNode builds the document entry for a programmatically created
// profile, always carrying all three keys the way the service's catalog
// format defines them.
func newProfileNode(operation string, parameters interface{}, description string) (*yaml.Node, error) {
	var paramsNode yaml.Node
	if err := paramsNode.Encode(parameters); err != nil {
		return nil, err
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	node.Content = append(node.Content,
		strNode("operation"), strNode(operation),
		strNode("parameters"), &paramsNode,
		strNode("description"), strNode(description),
	)
	return node, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
