package systems

// SystemInfo describes a frame phase for HUD display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // "frame" or "render"
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the per-frame phases in the order they run.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Drains device events into the pointer snapshot", Category: "frame"})
	r.Register(SystemInfo{ID: "camera", Name: "Camera", Description: "Rotates, moves and bobs the viewer", Category: "frame"})
	r.Register(SystemInfo{ID: "spectrum", Name: "Spectrum", Description: "Analyses audible audio and maps it onto the grid", Category: "frame"})
	r.Register(SystemInfo{ID: "upload", Name: "Upload", Description: "Pushes spectrum bins to the screen texture", Category: "render"})
	r.Register(SystemInfo{ID: "draw", Name: "Draw", Description: "Renders the room, grid and screen", Category: "render"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
