package catalog

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/robinrj6/FFmpeg-batch/pkg/logging"
	"github.com/robinrj6/FFmpeg-batch/pkg/models"
	"gopkg.in/yaml.v3"
)

// Manager owns the local catalog of processing profiles and workflows
// backed by a single YAML file. Catalog problems are recoverable by
// contract: a missing or broken file, or an unknown name, never produces
// an error, only a log line and an empty or absent result. The mutex makes
// the manager safe to share, though the backing file itself still assumes
// a single writer.
type Manager struct {
	path string
	log  *logging.Logger

	mu            sync.Mutex
	profiles      map[string]*Profile
	profileOrder  []string
	workflows     map[string]*Workflow
	workflowOrder []string
}

// NewManager creates a manager for the catalog file at path and performs
// the initial load.
func NewManager(path string, log *logging.Logger) *Manager {
	m := &Manager{
		path:      path,
		log:       log,
		profiles:  make(map[string]*Profile),
		workflows: make(map[string]*Workflow),
	}
	m.Load()
	return m
}

// Load reads the backing file and replaces the in-memory mappings. Every
// failure mode leaves the previous state untouched: missing file is only
// a warning, anything else is logged as an error.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.log.Warn(fmt.Sprintf("Catalog file not found: %s", m.path))
		} else {
			m.log.Error(fmt.Sprintf("Failed to load catalog: %v", err))
		}
		return
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		m.log.Error(fmt.Sprintf("Failed to load catalog: %v", err))
		return
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		m.log.Error(fmt.Sprintf("Failed to load catalog: %s does not hold a mapping document", m.path))
		return
	}
	root := doc.Content[0]

	profiles, profileOrder := m.decodeProfiles(findMapValue(root, "profiles"))
	workflows, workflowOrder := m.decodeWorkflows(findMapValue(root, "workflows"))

	m.profiles, m.profileOrder = profiles, profileOrder
	m.workflows, m.workflowOrder = workflows, workflowOrder

	m.log.Info(fmt.Sprintf("Loaded %d profiles and %d workflows", len(m.profiles), len(m.workflows)))
}

// decodeProfiles walks the profiles mapping in document order. Entries that
// are not mappings are skipped with a warning; a duplicated name keeps its
// first position and last value.
func (m *Manager) decodeProfiles(node *yaml.Node) (map[string]*Profile, []string) {
	profiles := make(map[string]*Profile)
	var order []string
	if node == nil || node.Kind != yaml.MappingNode {
		return profiles, order
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := resolveAlias(node.Content[i+1])
		if value.Kind != yaml.MappingNode {
			m.log.Warn(fmt.Sprintf("Skipping profile %q: entry is not a mapping", name))
			continue
		}
		if _, exists := profiles[name]; !exists {
			order = append(order, name)
		}
		profiles[name] = profileFromNode(value)
	}
	return profiles, order
}

// decodeWorkflows mirrors decodeProfiles for the workflows mapping
func (m *Manager) decodeWorkflows(node *yaml.Node) (map[string]*Workflow, []string) {
	workflows := make(map[string]*Workflow)
	var order []string
	if node == nil || node.Kind != yaml.MappingNode {
		return workflows, order
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := resolveAlias(node.Content[i+1])
		if value.Kind != yaml.MappingNode {
			m.log.Warn(fmt.Sprintf("Skipping workflow %q: entry is not a mapping", name))
			continue
		}
		if _, exists := workflows[name]; !exists {
			order = append(order, name)
		}
		workflows[name] = workflowFromNode(value)
	}
	return workflows, order
}

// GetProfile looks up a profile by name. Absence is reported through the
// boolean, never as an error. The returned profile is shared state and must
// not be mutated by the caller.
func (m *Manager) GetProfile(name string) (*Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.profiles[name]
	if !ok {
		m.log.Warn(fmt.Sprintf("Profile not found: %s", name))
		return nil, false
	}
	return profile, true
}

// GetWorkflow looks up a workflow by name
func (m *Manager) GetWorkflow(name string) (*Workflow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	workflow, ok := m.workflows[name]
	if !ok {
		m.log.Warn(fmt.Sprintf("Workflow not found: %s", name))
		return nil, false
	}
	return workflow, true
}

// ListProfiles summarizes all profiles in catalog order
func (m *Manager) ListProfiles() []models.ProfileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]models.ProfileInfo, 0, len(m.profileOrder))
	for _, name := range m.profileOrder {
		p := m.profiles[name]
		infos = append(infos, models.ProfileInfo{
			Name:        name,
			Operation:   p.Operation,
			Description: p.Description,
		})
	}
	return infos
}

// ListWorkflows summarizes all workflows in catalog order
func (m *Manager) ListWorkflows() []models.WorkflowInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]models.WorkflowInfo, 0, len(m.workflowOrder))
	for _, name := range m.workflowOrder {
		w := m.workflows[name]
		infos = append(infos, models.WorkflowInfo{
			Name:        name,
			Description: w.Description,
			Jobs:        len(w.Jobs),
		})
	}
	return infos
}

// ValidateProfile reports whether the named profile exists and carries the
// operation and parameters keys. The check is shallow: values are not
// inspected, only key presence.
func (m *Manager) ValidateProfile(name string) bool {
	profile, ok := m.GetProfile(name)
	if !ok {
		return false
	}
	return profile.HasField("operation") && profile.HasField("parameters")
}

// CreateCustomProfile inserts or overwrites the named profile in memory.
// Last write wins, overwriting is not flagged. Nothing is persisted until
// an explicit Save.
func (m *Manager) CreateCustomProfile(name, operation string, parameters interface{}, description string) bool {
	node, err := newProfileNode(operation, parameters, description)
	if err != nil {
		m.log.Error(fmt.Sprintf("Failed to create profile: %v", err))
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[name]; !exists {
		m.profileOrder = append(m.profileOrder, name)
	}
	m.profiles[name] = &Profile{
		Operation:   operation,
		Parameters:  parameters,
		Description: description,
		node:        node,
	}

	m.log.Info(fmt.Sprintf("Created custom profile: %s", name))
	return true
}

// Save rewrites the full backing file from the in-memory state, keeping
// catalog order. This is a whole-document replace; the manager assumes it
// is the only writer of its file.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	profilesNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range m.profileOrder {
		profilesNode.Content = append(profilesNode.Content, strNode(name), m.profiles[name].node)
	}
	workflowsNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range m.workflowOrder {
		workflowsNode.Content = append(workflowsNode.Content, strNode(name), m.workflows[name].node)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content,
		strNode("profiles"), profilesNode,
		strNode("workflows"), workflowsNode,
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(m.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	m.log.Info(fmt.Sprintf("Catalog saved to %s", m.path))
	return nil
}

// Counts reports the number of loaded profiles and workflows
func (m *Manager) Counts() (profiles, workflows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.profiles), len(m.workflows)
}
