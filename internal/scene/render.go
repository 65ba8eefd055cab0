package scene

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"brickforge/internal/geometry"
)

// defaultCylinderSlices controls stud/hole mesh resolution.
const defaultCylinderSlices = 16

// holeColor is the dark inset tint for technic hole markers.
var holeColor = rl.NewColor(40, 40, 40, 255)

// meshCache holds the shared GPU meshes: one unit cube and one unit cylinder,
// transformed per draw. Created lazily so GPU resources are allocated after
// the window/OpenGL context exists.
type meshCache struct {
	loaded   bool
	cube     rl.Mesh
	cylinder rl.Mesh
	mtl      rl.Material
}

func newMeshCache() *meshCache {
	return &meshCache{}
}

func (m *meshCache) ensure() {
	if m.loaded {
		return
	}
	m.cube = rl.GenMeshCube(1, 1, 1)
	// Unit cylinder: radius 0.5, height 1, base at Y=0 (raylib convention);
	// draw transforms recenter it.
	m.cylinder = rl.GenMeshCylinder(0.5, 1, defaultCylinderSlices)
	m.mtl = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		m.mtl.Shader = shader
	}
	m.loaded = true
}

// DrawShape draws one synthesized shape at a placed part's position and
// quarter-turn rotation. Must be called between Begin and End.
func (s *Scene) DrawShape(shape geometry.Shape, position [3]float32, rotation int) {
	s.meshes.ensure()
	setLitUniforms(s.meshes.mtl.Shader, s.Camera)

	rot := rl.MatrixRotateY(float32(rotation) * (math.Pi / 2))
	trans := rl.MatrixTranslate(position[0], position[1], position[2])
	partM := rl.MatrixMultiply(rot, trans)

	alpha := uint8(255)
	if shape.Opacity < 1 {
		alpha = uint8(shape.Opacity * 255)
	}
	baseColor := rl.NewColor(shape.Color[0], shape.Color[1], shape.Color[2], alpha)

	s.drawBox(shape.Base, baseColor, partM)
	for _, stud := range shape.Studs {
		s.drawCylinder(stud, baseColor, partM)
	}
	dark := holeColor
	dark.A = alpha
	for _, hole := range shape.Holes {
		s.drawCylinder(hole, dark, partM)
	}
}

func (s *Scene) drawBox(b geometry.Box, color rl.Color, partM rl.Matrix) {
	scale := rl.MatrixScale(b.Size[0], b.Size[1], b.Size[2])
	offset := rl.MatrixTranslate(b.Center[0], b.Center[1], b.Center[2])
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scale, offset), partM)
	s.drawMesh(s.meshes.cube, color, transform)
}

func (s *Scene) drawCylinder(c geometry.Cylinder, color rl.Color, partM rl.Matrix) {
	// Recenter the unit cylinder (base at Y=0), scale to radius/height, lay
	// it over for X-axis markers, then move to the element center.
	center := rl.MatrixTranslate(0, -0.5, 0)
	scale := rl.MatrixScale(c.Radius*2, c.Height, c.Radius*2)
	local := rl.MatrixMultiply(center, scale)
	if c.Axis == geometry.AxisX {
		local = rl.MatrixMultiply(local, rl.MatrixRotateZ(math.Pi/2))
	}
	offset := rl.MatrixTranslate(c.Center[0], c.Center[1], c.Center[2])
	transform := rl.MatrixMultiply(rl.MatrixMultiply(local, offset), partM)
	s.drawMesh(s.meshes.cylinder, color, transform)
}

func (s *Scene) drawMesh(mesh rl.Mesh, color rl.Color, transform rl.Matrix) {
	if albedo := s.meshes.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	rl.DrawMesh(mesh, s.meshes.mtl, transform)
}

// loadLitShader returns a directional-light-plus-ambient shader so parts read
// as solid volumes instead of flat silhouettes.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

// lightDir is the direction to the light (normalized-ish; the shader
// normalizes).
var lightDir = [3]float32{0.5, 1, 0.5}

var ambient = [4]float32{0.25, 0.26, 0.3, 1.0}

func setLitUniforms(shader rl.Shader, cam rl.Camera3D) {
	if !rl.IsShaderValid(shader) {
		return
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		dir := lightDir
		rl.SetShaderValueV(shader, loc, dir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		amb := ambient
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 ambient;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 lit = colDiffuse.rgb * (ambient.rgb + vec3(NdotL) * 0.8);
  finalColor = vec4(min(lit, vec3(1.0)), colDiffuse.a);
}
`
)
