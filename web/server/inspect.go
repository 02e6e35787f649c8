package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jayden-chan/rtiow/pkg/core"
	"github.com/jayden-chan/rtiow/pkg/geometry"
	"github.com/jayden-chan/rtiow/pkg/material"
	"github.com/jayden-chan/rtiow/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// textureColor reports the color of constant textures; other textures are sampled at the hit point
func textureColor(tex material.Texture, hit *material.HitRecord) core.Vec3 {
	if constant, ok := tex.(*material.ConstantTexture); ok {
		return constant.Color
	}
	return tex.Value(hit.U, hit.V, hit.Point)
}

// extractMaterialInfo describes a material with type assertions
func extractMaterialInfo(hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := hit.Material.(type) {
	case *material.Lambertian:
		albedo := textureColor(m.Albedo, hit)
		properties["albedo"] = vec3Array(albedo)
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec3Array(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := textureColor(m.Emit, hit)
		properties["emission"] = vec3Array(emission)
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a top-level scene shape
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vec3Array(geom.Center0)
		properties["center1"] = vec3Array(geom.Center1)
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	case *geometry.Rectangle:
		properties["plane"] = geom.Plane.String()
		properties["a"] = [2]float64{geom.A0, geom.A1}
		properties["b"] = [2]float64{geom.B0, geom.B1}
		properties["k"] = geom.K
		properties["flip"] = geom.Flip
		return "rectangle", properties

	case *geometry.Block:
		properties["min"] = vec3Array(geom.Min)
		properties["max"] = vec3Array(geom.Max)
		return "block", properties

	case *geometry.Translate:
		innerType, innerProps := extractGeometryInfo(geom.Object)
		properties["offset"] = vec3Array(geom.Offset)
		properties["object"] = map[string]interface{}{"type": innerType, "properties": innerProps}
		return "translate", properties

	case *geometry.Rotate:
		innerType, innerProps := extractGeometryInfo(geom.Object)
		properties["axis"] = [...]string{"X", "Y", "Z"}[geom.Axis]
		properties["degrees"] = geom.Degrees
		properties["object"] = map[string]interface{}{"type": innerType, "properties": innerProps}
		return "rotate", properties

	case *geometry.BVHNode:
		properties["min"] = vec3Array(geom.Box.Min)
		properties["max"] = vec3Array(geom.Box.Max)
		return "bvh", properties

	case *geometry.HittableList:
		properties["objects"] = len(geom.Objects)
		return "list", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains the first hit along an inspection ray
type InspectResult struct {
	Hit       bool
	FrontFace bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // top-level shape that was hit, nil if none matched
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), with y growing downward.
// The scene must already be preprocessed.
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)

	// Fixed seed so repeated inspections of a lens camera agree
	sampler := core.NewSeededSampler(0)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	tMin := sceneObj.SamplingConfig.TMin
	hit, isHit := sceneObj.Hit(ray, tMin, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	result := InspectResult{
		Hit:       true,
		FrontFace: ray.Direction.Dot(hit.Normal) < 0,
		HitRecord: hit,
	}

	// The hierarchy does not report which shape it hit
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, tMin, hit.T+1e-9); ok && shapeHit.T == hit.T {
			result.Shape = shape
			break
		}
	}

	return result
}

// handleInspect reports what lies under a pixel of a scene
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
	}

	result := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec3Array(result.HitRecord.Point),
		Normal:       vec3Array(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
