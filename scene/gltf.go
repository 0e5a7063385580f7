package scene

import (
	"bytes"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/qmuntal/gltf"
)

// GLTFLoadOptions controls how glTF documents are turned into Nodes.
type GLTFLoadOptions struct {
	// LabelProperty is the key in a glTF node's extras whose string value becomes the Node's Label.
	// Nodes without that property use their name as their Label.
	LabelProperty string

	// CameraAspectRatio is the aspect ratio given to loaded Cameras that don't specify one.
	CameraAspectRatio float64

	// DefaultToTransparent marks every loaded Material as transparent, regardless of its alpha mode.
	DefaultToTransparent bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		LabelProperty:     "label",
		CameraAspectRatio: 16.0 / 9.0,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter
// how the file is loaded. Passing nil for loadOptions will load the file using default load options. External
// buffers are resolved relative to the file.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.New("opening glTF file failed").
			WithType(ErrTypeGLTFDecode).
			WithTag("path", path).
			Wrap(err)
	}
	return loadGLTFDocument(doc, loadOptions)
}

// LoadGLTFData loads glTF or glb data from the byte slice given. Passing nil for loadOptions will load the data
// using default load options.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*Library, error) {
	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, errors.New("decoding glTF data failed").
			WithType(ErrTypeGLTFDecode).
			Wrap(err)
	}

	return loadGLTFDocument(doc, loadOptions)
}

func loadGLTFDocument(doc *gltf.Document, loadOptions *GLTFLoadOptions) (*Library, error) {

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	if len(doc.Scenes) == 0 {
		return nil, errors.New("glTF document has no scenes").WithType(ErrTypeGLTFNoScenes)
	}

	library := NewLibrary()

	materials := make([]*Material, len(doc.Materials))

	for i, gltfMat := range doc.Materials {

		newMat := NewMaterial(gltfMat.Name)
		newMat.BackfaceCulling = !gltfMat.DoubleSided

		if pbr := gltfMat.PBRMetallicRoughness; pbr != nil {
			color := pbr.BaseColorFactorOrDefault()
			newMat.Color = NewColor(float32(color[0]), float32(color[1]), float32(color[2]), float32(color[3]))
			newMat.Opacity = float32(color[3])
		}

		newMat.Transparent = loadOptions.DefaultToTransparent || gltfMat.AlphaMode == gltf.AlphaBlend

		if _, unlit := gltfMat.Extensions["KHR_materials_unlit"]; unlit {
			newMat.EnableLighting = false
		}

		if dataMap, isMap := gltfMat.Extras.(map[string]interface{}); isMap {
			for k, v := range dataMap {
				newMat.Properties.Set(k, v)
			}
		}

		materials[i] = newMat
		library.Materials[gltfMat.Name] = newMat

	}

	objects := make([]*Node, len(doc.Nodes))

	for i, node := range doc.Nodes {

		var obj *Node

		if node.Camera != nil {

			gltfCam := doc.Cameras[*node.Camera]

			newCam := NewCamera(node.Name)
			newCam.SetAspectRatio(loadOptions.CameraAspectRatio)

			if gltfCam.Perspective != nil {
				newCam.perspective = true
				newCam.near = float64(gltfCam.Perspective.Znear)
				if gltfCam.Perspective.Zfar != nil {
					newCam.far = float64(*gltfCam.Perspective.Zfar)
				} else {
					newCam.far = math.Inf(1)
				}
				newCam.fieldOfView = float64(gltfCam.Perspective.Yfov) * 180 / math.Pi
				if gltfCam.Perspective.AspectRatio != nil {
					newCam.SetAspectRatio(float64(*gltfCam.Perspective.AspectRatio))
				}
			} else if gltfCam.Orthographic != nil {
				newCam.perspective = false
				newCam.near = float64(gltfCam.Orthographic.Znear)
				newCam.far = float64(gltfCam.Orthographic.Zfar)
				newCam.orthoScale = float64(gltfCam.Orthographic.Ymag * 2)
				if gltfCam.Orthographic.Ymag != 0 {
					newCam.SetAspectRatio(float64(gltfCam.Orthographic.Xmag / gltfCam.Orthographic.Ymag))
				}
			}

			library.Cameras = append(library.Cameras, newCam)
			obj = newCam.Node

		} else {
			obj = NewNode(node.Name)
		}

		obj.SetLabel(node.Name)

		if dataMap, isMap := node.Extras.(map[string]interface{}); isMap {
			for k, v := range dataMap {
				obj.props.Set(k, v)
			}
			if label, ok := dataMap[loadOptions.LabelProperty].(string); ok {
				obj.SetLabel(label)
			}
		}

		if node.Mesh != nil {

			mesh := doc.Meshes[*node.Mesh]
			bounds := Bounds{}

			for _, prim := range mesh.Primitives {

				if prim.Material != nil && int(*prim.Material) < len(materials) {
					obj.materials = append(obj.materials, materials[*prim.Material])
				}

				posIndex, ok := prim.Attributes[gltf.POSITION]
				if !ok {
					continue
				}
				acc := doc.Accessors[posIndex]
				if len(acc.Min) < 3 || len(acc.Max) < 3 {
					logs.WithTag("mesh", mesh.Name).
						Debug("primitive position accessor has no min / max; skipping its bounds")
					continue
				}

				bounds = bounds.Union(NewBoundsAABB(
					Vector{float64(acc.Min[0]), float64(acc.Min[1]), float64(acc.Min[2])},
					Vector{float64(acc.Max[0]), float64(acc.Max[1]), float64(acc.Max[2])},
				))

			}

			obj.bounds = bounds

		}

		var mtData [16]float64
		for j := range node.Matrix {
			mtData[j] = float64(node.Matrix[j])
		}

		if !isIdentityOrZero(mtData) {

			// Column-major
			c0 := Vector{mtData[0], mtData[1], mtData[2]}
			c1 := Vector{mtData[4], mtData[5], mtData[6]}
			c2 := Vector{mtData[8], mtData[9], mtData[10]}

			obj.position = Vector{mtData[12], mtData[13], mtData[14]}
			obj.scale = Vector{c0.Magnitude(), c1.Magnitude(), c2.Magnitude()}
			obj.SetLocalRotation(newQuaternionFromRotationColumns(c0.Unit(), c1.Unit(), c2.Unit()))

		} else {

			obj.position = Vector{float64(node.Translation[0]), float64(node.Translation[1]), float64(node.Translation[2])}

			scale := Vector{float64(node.Scale[0]), float64(node.Scale[1]), float64(node.Scale[2])}
			if scale.IsZero() {
				scale = Vector{1, 1, 1}
			}
			obj.scale = scale

			rot := NewQuaternion(float64(node.Rotation[0]), float64(node.Rotation[1]), float64(node.Rotation[2]), float64(node.Rotation[3]))
			if rot.Dot(rot) == 0 {
				rot = NewQuaternionIdentity()
			}
			obj.SetLocalRotation(rot)

		}

		objects[i] = obj

	}

	for i, node := range doc.Nodes {
		for _, childIndex := range node.Children {
			objects[i].AddChildren(objects[childIndex])
		}
	}

	for _, s := range doc.Scenes {

		root := NewNode(s.Name)

		for _, n := range s.Nodes {
			obj := objects[n]
			// A node may be listed by more than one scene; later scenes get a copy.
			if obj.parent != nil {
				obj = obj.Clone()
			}
			root.AddChildren(obj)
		}

		if dataMap, isMap := s.Extras.(map[string]interface{}); isMap {
			for k, v := range dataMap {
				root.props.Set(k, v)
			}
		}

		library.Scenes = append(library.Scenes, root)

	}

	library.ExportedScene = library.Scenes[0]
	if doc.Scene != nil && int(*doc.Scene) < len(library.Scenes) {
		library.ExportedScene = library.Scenes[*doc.Scene]
	}

	return library, nil

}

func isIdentityOrZero(m [16]float64) bool {
	zero, identity := true, true
	for i, v := range m {
		if v != 0 {
			zero = false
		}
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			identity = false
		}
	}
	return zero || identity
}
