package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene document (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroupName = "Built-in Scenes"

type builtIn struct {
	info  SceneInfo
	build func() *Scene
}

var builtIns = []builtIn{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, metal and hollow glass spheres under a sky"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with two rotated blocks and an area light"},
		build: NewCornellScene,
	},
	{
		info:  SceneInfo{ID: "random-spheres", Name: "Random Spheres", Description: "Field of random spheres with motion blur and depth of field"},
		build: func() *Scene { return NewRandomSpheresScene(42) },
	},
	{
		info:  SceneInfo{ID: "two-spheres", Name: "Two Spheres", Description: "Red sphere on a gray ground sphere"},
		build: NewTwoSpheresScene,
	},
}

// BuiltInIDs returns the identifiers of the built-in scenes
func BuiltInIDs() []string {
	ids := make([]string, len(builtIns))
	for i, b := range builtIns {
		ids[i] = b.info.ID
	}
	return ids
}

// NewBuiltIn constructs the built-in scene with the given id
func NewBuiltIn(id string) (*Scene, error) {
	for _, b := range builtIns {
		if b.info.ID == id {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(BuiltInIDs(), ", "))
}

// ListJSONScenes scans dir for scene documents. A missing directory yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Skip unreadable documents; loading them reports the real error
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseJSONMetadata reads the optional top-level name, description and group of a scene document
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "json:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("%s: %w", filePath, err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	if header.Group != "" {
		info.Group = header.Group
	}
	info.Description = header.Description

	return info, nil
}

// ListAllScenes returns built-in scenes and the documents in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtIns))
	for _, b := range builtIns {
		info := b.info
		info.Group = builtInGroupName
		info.Type = "builtin"
		allScenes = append(allScenes, info)
	}

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes = append(allScenes, jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroupName {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[builtInGroupName]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtInGroupName,
			Scenes: builtInGroup,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
