package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

var (
	// ErrMissingField reports a required field absent from a scene document
	ErrMissingField = errors.New("missing field")
	// ErrUnknownType reports an object, material or texture name the loader does not support
	ErrUnknownType = errors.New("unknown type")
)

// Vector is a JSON point, direction or color
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector) vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// SceneDocument is the top level of a JSON scene file
type SceneDocument struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Group       string              `json:"group"`
	Objects     []ObjectDocument    `json:"objects"`
	Camera      *CameraDocument     `json:"camera"`
	Background  *BackgroundDocument `json:"background"`
	Render      *RenderDocument     `json:"render"`
}

// CameraDocument describes the viewpoint. Aperture defaults to 0.0001 and the
// focus distance to |look_from - look_at|.
type CameraDocument struct {
	LookFrom  *Vector  `json:"look_from"`
	LookAt    *Vector  `json:"look_at"`
	VUp       *Vector  `json:"vup"`
	VFov      *float64 `json:"vfov"`
	Aperture  *float64 `json:"aperture"`
	FocusDist *float64 `json:"focus_dist"`
	T0        *float64 `json:"t0"`
	T1        *float64 `json:"t1"`
}

// BackgroundDocument is a solid color when only top is given, otherwise a vertical gradient
type BackgroundDocument struct {
	Top    *Vector `json:"top"`
	Bottom *Vector `json:"bottom"`
}

// RenderDocument carries optional default render settings
type RenderDocument struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Samples  int `json:"samples"`
	MaxDepth int `json:"max_depth"`
}

// ObjectDocument is any entry of an objects or items list. Which fields are
// required depends on Name.
type ObjectDocument struct {
	Name     string            `json:"name"`
	Material *MaterialDocument `json:"material"`

	// Sphere and MovingSphere
	Center  *Vector  `json:"center"`
	Center2 *Vector  `json:"center2"`
	Radius  *float64 `json:"radius"`
	T0      *float64 `json:"t0"`
	T1      *float64 `json:"t1"`

	// Rectangle
	Plane *string  `json:"plane"`
	A0    *float64 `json:"a0"`
	A1    *float64 `json:"a1"`
	B0    *float64 `json:"b0"`
	B1    *float64 `json:"b1"`
	K     *float64 `json:"k"`
	Flip  *bool    `json:"flip"`

	// Block
	P0 *Vector `json:"p0"`
	P1 *Vector `json:"p1"`

	// BVH
	Items []ObjectDocument `json:"items"`

	// Translate and Rotate
	Object *ObjectDocument `json:"object"`
	Offset *Vector         `json:"offset"`
	Axis   *string         `json:"axis"`
	Angle  *float64        `json:"angle"`
}

// MaterialDocument describes a surface material
type MaterialDocument struct {
	Name    string           `json:"name"`
	Albedo  *Vector          `json:"albedo"`
	Fuzz    *float64         `json:"fuzz"`
	RefIdx  *float64         `json:"ref_idx"`
	Texture *TextureDocument `json:"texture"`
}

// TextureDocument describes a texture. Only "Constant" exists.
type TextureDocument struct {
	Name   string  `json:"name"`
	Values *Vector `json:"values"`
}

// LoadSceneJSON reads and builds the scene document at path
func LoadSceneJSON(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	doc, err := ParseSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSceneJSON decodes a scene document without building it
func ParseSceneJSON(reader io.Reader) (*SceneDocument, error) {
	var doc SceneDocument
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if doc.Objects == nil {
		return nil, missingField("scene", "objects")
	}
	return &doc, nil
}

// Build converts the document into a scene. Objects with a DiffuseLight material
// that can be sampled directly also become the scene's lights.
func (doc *SceneDocument) Build() (*scene.Scene, error) {
	cameraConfig, err := doc.cameraConfig()
	if err != nil {
		return nil, err
	}

	background, err := doc.background()
	if err != nil {
		return nil, err
	}

	s := scene.NewScene(cameraConfig, background)
	if r := doc.Render; r != nil {
		if r.Width > 0 && r.Height > 0 {
			s.SetImageSize(r.Width, r.Height)
		}
		if r.Samples > 0 {
			s.SamplingConfig.SamplesPerPixel = r.Samples
		}
		if r.MaxDepth > 0 {
			s.SamplingConfig.MaxDepth = r.MaxDepth
		}
	}

	b := &sceneBuilder{
		scene:   s,
		t0:      cameraConfig.Time0,
		t1:      cameraConfig.Time1,
		sampler: core.NewSeededSampler(s.BVHSeed),
	}
	shapes, err := b.objects(doc.Objects, "objects")
	if err != nil {
		return nil, err
	}
	s.Add(shapes...)

	return s, nil
}

func (doc *SceneDocument) cameraConfig() (geometry.CameraConfig, error) {
	config := geometry.DefaultCameraConfig()
	c := doc.Camera
	if c == nil {
		return config, nil
	}

	switch {
	case c.LookFrom == nil:
		return config, missingField("camera", "look_from")
	case c.LookAt == nil:
		return config, missingField("camera", "look_at")
	case c.VUp == nil:
		return config, missingField("camera", "vup")
	case c.VFov == nil:
		return config, missingField("camera", "vfov")
	}

	config.LookFrom = c.LookFrom.vec3()
	config.LookAt = c.LookAt.vec3()
	config.VUp = c.VUp.vec3()
	config.VFov = *c.VFov
	config.Aperture = valueOr(c.Aperture, 0.0001)
	config.FocusDistance = valueOr(c.FocusDist, config.LookFrom.Subtract(config.LookAt).Length())
	config.Time0 = valueOr(c.T0, 0)
	config.Time1 = valueOr(c.T1, 0)

	if config.Time1 < config.Time0 {
		return config, fmt.Errorf("camera: shutter closes (t1=%g) before it opens (t0=%g)", config.Time1, config.Time0)
	}
	return config, nil
}

func (doc *SceneDocument) background() (scene.Background, error) {
	bg := doc.Background
	if bg == nil {
		return scene.NewSolidBackground(core.Vec3{}), nil
	}
	if bg.Top == nil {
		return nil, missingField("background", "top")
	}
	if bg.Bottom == nil {
		return scene.NewSolidBackground(bg.Top.vec3()), nil
	}
	return &scene.GradientBackground{Top: bg.Top.vec3(), Bottom: bg.Bottom.vec3()}, nil
}

// sceneBuilder carries the state shared while converting nested objects
type sceneBuilder struct {
	scene   *scene.Scene
	t0, t1  float64
	sampler core.Sampler
}

func (b *sceneBuilder) objects(docs []ObjectDocument, path string) ([]geometry.Shape, error) {
	shapes := make([]geometry.Shape, 0, len(docs))
	for i := range docs {
		shape, err := b.object(&docs[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

func (b *sceneBuilder) object(doc *ObjectDocument, path string) (geometry.Shape, error) {
	switch doc.Name {
	case "BVH":
		return b.bvh(doc, path)
	case "Translate":
		return b.translate(doc, path)
	case "Rotate":
		return b.rotate(doc, path)
	}

	if doc.Material == nil {
		return nil, missingField(path, "material")
	}
	mat, err := parseMaterial(doc.Material, path+".material")
	if err != nil {
		return nil, err
	}

	var shape geometry.Shape
	switch doc.Name {
	case "Sphere":
		if err := require(path, field{"center", doc.Center == nil}, field{"radius", doc.Radius == nil}); err != nil {
			return nil, err
		}
		shape = geometry.NewSphere(doc.Center.vec3(), *doc.Radius, mat)

	case "MovingSphere":
		if err := require(path,
			field{"center", doc.Center == nil}, field{"center2", doc.Center2 == nil},
			field{"radius", doc.Radius == nil}, field{"t0", doc.T0 == nil}, field{"t1", doc.T1 == nil},
		); err != nil {
			return nil, err
		}
		shape = geometry.NewMovingSphere(doc.Center.vec3(), doc.Center2.vec3(), *doc.T0, *doc.T1, *doc.Radius, mat)

	case "Rectangle":
		if err := require(path,
			field{"plane", doc.Plane == nil}, field{"a0", doc.A0 == nil}, field{"a1", doc.A1 == nil},
			field{"b0", doc.B0 == nil}, field{"b1", doc.B1 == nil}, field{"k", doc.K == nil},
		); err != nil {
			return nil, err
		}
		plane, err := geometry.ParsePlane(*doc.Plane)
		if err != nil {
			return nil, fmt.Errorf("%s.plane: %w", path, err)
		}
		shape = geometry.NewRectangle(plane, *doc.A0, *doc.A1, *doc.B0, *doc.B1, *doc.K, valueOr(doc.Flip, false), mat)

	case "Block":
		if err := require(path, field{"p0", doc.P0 == nil}, field{"p1", doc.P1 == nil}); err != nil {
			return nil, err
		}
		shape = geometry.NewBlock(doc.P0.vec3(), doc.P1.vec3(), mat)

	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownType, doc.Name)
	}

	if _, emissive := mat.(*material.DiffuseLight); emissive {
		if light, ok := shape.(geometry.Light); ok {
			b.scene.Lights = append(b.scene.Lights, light)
		}
	}
	return shape, nil
}

func (b *sceneBuilder) bvh(doc *ObjectDocument, path string) (geometry.Shape, error) {
	if len(doc.Items) == 0 {
		return nil, missingField(path, "items")
	}
	items, err := b.objects(doc.Items, path+".items")
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if _, ok := item.BoundingBox(b.t0, b.t1); !ok {
			return nil, fmt.Errorf("%s.items[%d]: object has no bounding box", path, i)
		}
	}
	return geometry.NewBVH(items, b.t0, b.t1, b.sampler), nil
}

func (b *sceneBuilder) translate(doc *ObjectDocument, path string) (geometry.Shape, error) {
	if err := require(path, field{"object", doc.Object == nil}, field{"offset", doc.Offset == nil}); err != nil {
		return nil, err
	}
	inner, err := b.object(doc.Object, path+".object")
	if err != nil {
		return nil, err
	}
	return geometry.NewTranslate(inner, doc.Offset.vec3()), nil
}

func (b *sceneBuilder) rotate(doc *ObjectDocument, path string) (geometry.Shape, error) {
	if err := require(path, field{"object", doc.Object == nil}, field{"axis", doc.Axis == nil}, field{"angle", doc.Angle == nil}); err != nil {
		return nil, err
	}
	axis, err := geometry.ParseAxis(*doc.Axis)
	if err != nil {
		return nil, fmt.Errorf("%s.axis: %w", path, err)
	}
	inner, err := b.object(doc.Object, path+".object")
	if err != nil {
		return nil, err
	}
	return geometry.NewRotate(inner, axis, *doc.Angle, b.t0, b.t1), nil
}

func parseMaterial(doc *MaterialDocument, path string) (material.Material, error) {
	switch doc.Name {
	case "Lambertian":
		if doc.Albedo == nil {
			return nil, missingField(path, "albedo")
		}
		return material.NewLambertian(doc.Albedo.vec3()), nil

	case "Metal":
		if err := require(path, field{"albedo", doc.Albedo == nil}, field{"fuzz", doc.Fuzz == nil}); err != nil {
			return nil, err
		}
		return material.NewMetal(doc.Albedo.vec3(), *doc.Fuzz), nil

	case "Dielectric":
		if doc.RefIdx == nil {
			return nil, missingField(path, "ref_idx")
		}
		if *doc.RefIdx <= 0 {
			return nil, fmt.Errorf("%s.ref_idx: must be positive, got %g", path, *doc.RefIdx)
		}
		return material.NewDielectric(*doc.RefIdx), nil

	case "DiffuseLight":
		if doc.Texture == nil {
			return nil, missingField(path, "texture")
		}
		emission, err := parseConstantTexture(doc.Texture, path+".texture")
		if err != nil {
			return nil, err
		}
		return material.NewDiffuseLight(emission), nil

	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownType, doc.Name)
	}
}

func parseConstantTexture(doc *TextureDocument, path string) (core.Vec3, error) {
	if doc.Name != "Constant" {
		return core.Vec3{}, fmt.Errorf("%s: %w %q", path, ErrUnknownType, doc.Name)
	}
	if doc.Values == nil {
		return core.Vec3{}, missingField(path, "values")
	}
	return doc.Values.vec3(), nil
}

type field struct {
	name    string
	missing bool
}

// require reports the first missing field in declaration order
func require(path string, fields ...field) error {
	for _, f := range fields {
		if f.missing {
			return missingField(path, f.name)
		}
	}
	return nil
}

func missingField(path, name string) error {
	return fmt.Errorf("%s: %w %q", path, ErrMissingField, name)
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
