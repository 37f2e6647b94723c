package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-progressive-core/pkg/core"
	"github.com/df07/go-progressive-core/pkg/scene"
	"github.com/df07/go-progressive-core/pkg/session"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Origin       [3]float64             `json:"origin"`
	Direction    [3]float64             `json:"direction"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Footprint    *FootprintInfo         `json:"footprint,omitempty"`
	Properties   map[string]interface{} `json:"properties"`
}

// FootprintInfo is the surface patch one pixel covers at the hit point
type FootprintInfo struct {
	DpDx  [3]float64 `json:"dpdx"`
	DpDy  [3]float64 `json:"dpdy"`
	DuvDx [2]float64 `json:"duvdx"`
	DuvDy [2]float64 `json:"duvdy"`
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat scene.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *scene.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *scene.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *scene.Emissive:
		properties["emission"] = toArray(m.Emission)
		properties["color"] = hexColor(m.Emission)
		return "emissive", properties

	default:
		return "unknown", properties
	}
}

// handleInspect reports what the camera sees through one pixel of a render
// configured by the same query parameters as /api/render
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	opts, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Inspection is always against the full output resolution
	opts.Supersample = false
	opts.QualityDivisor = 1

	query := r.URL.Query()
	x, errX := strconv.Atoi(query.Get("x"))
	y, errY := strconv.Atoi(query.Get("y"))
	if errX != nil || errY != nil || x < 0 || y < 0 || x >= opts.Width || y >= opts.Height {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("pixel must be inside %dx%d", opts.Width, opts.Height))
		return
	}

	sess, err := session.New(opts, s.sceneConfig)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := sess.Inspect(x, y)
	response := InspectResponse{
		Hit:        result.OK,
		Origin:     toArray(result.Ray.Origin),
		Direction:  toArray(result.Ray.Direction),
		Properties: map[string]interface{}{},
	}
	if result.OK {
		response.MaterialType, response.Properties = extractMaterialInfo(result.Hit.Material)
		response.Point = toArray(result.Hit.Point)
		response.Normal = toArray(result.Hit.Normal)
		response.Distance = result.Hit.Point.Subtract(result.Ray.Origin).Length()
		response.FrontFace = result.Hit.FrontFace
		response.UV = [2]float64{result.Hit.U, result.Hit.V}
	}
	if result.HasFootprint {
		fp := result.Footprint
		response.Footprint = &FootprintInfo{
			DpDx:  toArray(fp.DpDx),
			DpDy:  toArray(fp.DpDy),
			DuvDx: [2]float64{fp.DuDx, fp.DvDx},
			DuvDy: [2]float64{fp.DuDy, fp.DvDy},
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor clamps a spectrum to a CSS color
func hexColor(c core.Spectrum) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
